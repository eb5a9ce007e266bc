package telegram

import (
	"context"

	"promo_broadcast_bot/internal/domain/recipient"
)

// Messenger defines the outgoing operations the broadcaster needs from a Telegram bot.
// This keeps the delivery logic independent of the specific bot library.
type Messenger interface {
	// SendText sends an HTML formatted message with link preview enabled.
	SendText(ctx context.Context, to recipient.ID, text string) error
	// SendAlbum sends the images as one media group. The caption is attached to the
	// first image only.
	SendAlbum(ctx context.Context, to recipient.ID, imagePaths []string, caption string) error
}
