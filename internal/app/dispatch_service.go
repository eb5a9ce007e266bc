// internal/app/dispatch_service.go
package app

import (
	"context"
	"time"

	"promo_broadcast_bot/internal/domain/content"
	"promo_broadcast_bot/internal/domain/delivery"
	"promo_broadcast_bot/internal/domain/recipient"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Summary is the result of one dispatch run.
type Summary struct {
	RunID       string
	Total       int
	Attempted   int
	Succeeded   int
	Failed      int
	ByCategory  map[delivery.Category]int
	Elapsed     time.Duration
	Interrupted bool // ctx was cancelled before every recipient was attempted
}

// Dispatcher sends to recipients one at a time with a fixed delay between them.
type Dispatcher struct {
	unit   DeliveryUnit
	delay  time.Duration
	clock  Clock
	logger *logrus.Entry
}

func NewDispatcher(unit DeliveryUnit, delay time.Duration, clock Clock, logger *logrus.Entry) *Dispatcher {
	return &Dispatcher{unit: unit, delay: delay, clock: clock, logger: logger}
}

// Run delivers msg to every recipient in order. Recipient level failures are counted,
// never returned. Cancelling ctx stops the loop before the next recipient; a delivery
// already in progress is completed.
func (d *Dispatcher) Run(ctx context.Context, ids []recipient.ID, imageCount int, msg content.Message) Summary {
	s := Summary{
		RunID:      uuid.NewString(),
		Total:      len(ids),
		ByCategory: make(map[delivery.Category]int),
	}
	log := d.logger.WithField("run_id", s.RunID)
	log.Infof("Starting send to %d user(s) with %d image(s)...", s.Total, imageCount)

	start := d.clock.Now()
	for i, id := range ids {
		if i > 0 {
			if err := d.clock.Sleep(ctx, d.delay); err != nil {
				s.Interrupted = true
				break
			}
		} else if ctx.Err() != nil {
			s.Interrupted = true
			break
		}

		log.WithFields(logrus.Fields{"index": i + 1, "total": s.Total}).Infof("Sending to user %d/%d (ID: %d)...", i+1, s.Total, id)
		outcome := d.unit.Deliver(context.WithoutCancel(ctx), id, imageCount, msg)
		s.Attempted++
		if outcome.Succeeded() {
			s.Succeeded++
		} else {
			s.Failed++
			s.ByCategory[outcome.Category]++
		}
	}
	s.Elapsed = d.clock.Now().Sub(start)

	d.report(log, s)
	return s
}

func (d *Dispatcher) report(log *logrus.Entry, s Summary) {
	fields := logrus.Fields{
		"total":     s.Total,
		"attempted": s.Attempted,
		"succeeded": s.Succeeded,
		"failed":    s.Failed,
		"elapsed":   s.Elapsed.Round(10 * time.Millisecond).String(),
	}
	for _, c := range delivery.Categories {
		if n := s.ByCategory[c]; n > 0 {
			fields["failed_"+string(c)] = n
		}
	}
	entry := log.WithFields(fields)
	if s.Interrupted {
		entry.Warnf("Send process interrupted after %d of %d user(s)", s.Attempted, s.Total)
	} else {
		entry.Info("--- Send process completed ---")
	}
	entry.Infof("Messages sent successfully: %d", s.Succeeded)
	entry.Infof("Failed sends: %d", s.Failed)
	entry.Infof("Total time: %.2f seconds", s.Elapsed.Seconds())
}
