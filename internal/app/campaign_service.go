package app

import (
	"context"

	"promo_broadcast_bot/internal/domain/content"
	"promo_broadcast_bot/internal/domain/recipient"
	"promo_broadcast_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// ContentLoader returns the message content for a run.
type ContentLoader func() content.Message

// Campaign performs a complete broadcast: resolve recipients, load content, dispatch.
type Campaign struct {
	cfg        config.RunConfig
	source     recipient.Source
	loadMsg    ContentLoader
	dispatcher *Dispatcher
	logger     *logrus.Entry
}

func NewCampaign(cfg config.RunConfig, source recipient.Source, loadMsg ContentLoader, dispatcher *Dispatcher, logger *logrus.Entry) *Campaign {
	return &Campaign{cfg: cfg, source: source, loadMsg: loadMsg, dispatcher: dispatcher, logger: logger}
}

// Run returns recipient.ErrNoRecipients when there is nobody to send to; in that case
// nothing is sent.
func (c *Campaign) Run(ctx context.Context) (Summary, error) {
	ids, err := ResolveRecipients(ctx, c.source, c.cfg, c.logger)
	if err != nil {
		c.logger.WithError(err).Error("No user IDs found to send messages to")
		return Summary{}, err
	}

	msg := c.loadMsg()
	return c.dispatcher.Run(ctx, ids, c.cfg.ImageCount, msg), nil
}
