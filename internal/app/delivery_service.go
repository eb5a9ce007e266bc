// internal/app/delivery_service.go
package app

import (
	"context"
	"os"
	"time"

	"promo_broadcast_bot/internal/domain/content"
	"promo_broadcast_bot/internal/domain/delivery"
	"promo_broadcast_bot/internal/domain/recipient"
	domainTelegram "promo_broadcast_bot/internal/domain/telegram"
	itelegram "promo_broadcast_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

// DeliveryUnit delivers the promotional message to a single recipient.
type DeliveryUnit interface {
	Deliver(ctx context.Context, id recipient.ID, imageCount int, msg content.Message) delivery.Outcome
}

// Deliverer sends the image step (album or caption text) followed by the detailed text.
type Deliverer struct {
	messenger  domainTelegram.Messenger
	imagePaths []string // configured slots, in order
	pause      time.Duration
	clock      Clock
	fileExists func(path string) bool
	logger     *logrus.Entry
}

func NewDeliverer(
	m domainTelegram.Messenger,
	imagePaths []string,
	pause time.Duration,
	clock Clock,
	logger *logrus.Entry,
) *Deliverer {
	paths := make([]string, len(imagePaths))
	copy(paths, imagePaths)
	return &Deliverer{
		messenger:  m,
		imagePaths: paths,
		pause:      pause,
		clock:      clock,
		fileExists: fileExists,
		logger:     logger,
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// availableImages returns the first imageCount configured paths that exist on disk.
func (d *Deliverer) availableImages(imageCount int) []string {
	if imageCount > len(d.imagePaths) {
		imageCount = len(d.imagePaths)
	}
	var paths []string
	for _, p := range d.imagePaths[:imageCount] {
		if d.fileExists(p) {
			paths = append(paths, p)
		} else {
			d.logger.WithField("path", p).Debug("Configured image not found, skipping")
		}
	}
	return paths
}

// Deliver never returns an error: every failure is logged and reported in the outcome.
func (d *Deliverer) Deliver(ctx context.Context, id recipient.ID, imageCount int, msg content.Message) delivery.Outcome {
	log := d.logger.WithField("recipient_id", id)
	imagesSent := 0

	var images []string
	if imageCount > 0 {
		images = d.availableImages(imageCount)
	}

	switch {
	case len(images) > 0:
		if err := d.messenger.SendAlbum(ctx, id, images, msg.Caption); err != nil {
			return d.fail(log, id, delivery.StepCaption, err)
		}
		imagesSent = len(images)
		log.Infof("Media group sent with %d image(s)", imagesSent)
	case imageCount > 0:
		if err := d.messenger.SendText(ctx, id, msg.Caption); err != nil {
			return d.fail(log, id, delivery.StepCaption, err)
		}
		log.Info("Caption sent as text (no images available)")
	default:
		if err := d.messenger.SendText(ctx, id, msg.Caption); err != nil {
			return d.fail(log, id, delivery.StepCaption, err)
		}
		log.Info("Caption sent as text (no-image mode)")
	}

	if err := d.clock.Sleep(ctx, d.pause); err != nil {
		return d.fail(log, id, delivery.StepDetailed, err)
	}

	if err := d.messenger.SendText(ctx, id, msg.Detailed); err != nil {
		return d.fail(log, id, delivery.StepDetailed, err)
	}
	log.Info("Detailed text message sent")
	return delivery.Success(id, imagesSent)
}

func (d *Deliverer) fail(log *logrus.Entry, id recipient.ID, step delivery.Step, err error) delivery.Outcome {
	category := itelegram.Classify(err)
	entry := log.WithFields(logrus.Fields{"step": step, "category": category}).WithError(err)
	switch category {
	case delivery.CategoryRecipientBlocked:
		entry.Warn("Could not send message: the user blocked the bot or never started a conversation with it")
	case delivery.CategoryBadRequest:
		entry.Warn("Bad request while sending message")
	case delivery.CategoryMissingImage:
		entry.Error("Problem with image files")
	case delivery.CategoryPlatformError:
		entry.Error("Telegram error while sending message")
	default:
		entry.Error("Unexpected error while sending message")
	}
	return delivery.Failure(id, step, category, err)
}
