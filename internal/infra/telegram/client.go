// internal/infra/telegram/client.go
package telegram

import (
	"context"
	"fmt"
	"os"

	"promo_broadcast_bot/internal/domain/recipient"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Messenger interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot     *telebot.Bot
	limiter *rate.Limiter // nil when unlimited
	logger  *logrus.Entry
}

// NewBot creates a send-only bot. The token is verified against the API.
func NewBot(token string, logger *logrus.Entry) (*telebot.Bot, error) {
	pref := telebot.Settings{
		Token: token,
		OnError: func(err error, c telebot.Context) { // Global error handler
			logger.WithError(err).Error("telebot error")
		},
	}
	b, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("could not create telegram bot: %w", err)
	}
	return b, nil
}

// NewTelebotAdapter wraps b. maxPerSecond caps API calls per second; 0 disables the cap.
func NewTelebotAdapter(b *telebot.Bot, maxPerSecond int, logger *logrus.Entry) *TelebotAdapter {
	a := &TelebotAdapter{bot: b, logger: logger}
	if maxPerSecond > 0 {
		a.limiter = rate.NewLimiter(rate.Limit(maxPerSecond), maxPerSecond)
	}
	return a
}

func (tba *TelebotAdapter) wait(ctx context.Context) error {
	if tba.limiter == nil {
		return nil
	}
	return tba.limiter.Wait(ctx)
}

// SendText sends an HTML message with link preview enabled.
func (tba *TelebotAdapter) SendText(ctx context.Context, to recipient.ID, text string) error {
	if err := tba.wait(ctx); err != nil {
		return err
	}
	_, err := tba.bot.Send(telebot.ChatID(to), text, textOptions())
	return err
}

// SendAlbum sends all images as one media group with the caption on the first photo.
// Files are opened by telebot while the request is built and closed afterwards.
func (tba *TelebotAdapter) SendAlbum(ctx context.Context, to recipient.ID, imagePaths []string, caption string) error {
	for _, p := range imagePaths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("image %s: %w", p, err)
		}
	}
	if err := tba.wait(ctx); err != nil {
		return err
	}
	_, err := tba.bot.SendAlbum(telebot.ChatID(to), buildAlbum(imagePaths, caption), &telebot.SendOptions{ParseMode: telebot.ModeHTML})
	return err
}

func textOptions() *telebot.SendOptions {
	return &telebot.SendOptions{ParseMode: telebot.ModeHTML, DisableWebPagePreview: false}
}

func buildAlbum(imagePaths []string, caption string) telebot.Album {
	album := make(telebot.Album, 0, len(imagePaths))
	for i, p := range imagePaths {
		photo := &telebot.Photo{File: telebot.FromDisk(p)}
		if i == 0 {
			photo.Caption = caption
		}
		album = append(album, photo)
	}
	return album
}
