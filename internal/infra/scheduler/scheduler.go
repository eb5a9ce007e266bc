package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"promo_broadcast_bot/internal/app"
	"promo_broadcast_bot/internal/domain/recipient"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CampaignRunner is satisfied by *app.Campaign.
type CampaignRunner interface {
	Run(ctx context.Context) (app.Summary, error)
}

// CampaignScheduler repeats a campaign on a cron schedule. A run that is still in
// progress when the next one is due causes that tick to be skipped.
type CampaignScheduler struct {
	cronEngine *cron.Cron
	campaign   CampaignRunner
	logger     *logrus.Entry
	spec       string
	ctx        context.Context
}

func NewCampaignScheduler(ctx context.Context, campaign CampaignRunner, spec string, logger *logrus.Entry) *CampaignScheduler {
	return &CampaignScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local), // Use server's local time for cron
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		campaign: campaign,
		logger:   logger,
		spec:     spec,
		ctx:      ctx,
	}
}

func (s *CampaignScheduler) Start() error {
	s.logger.WithField("schedule", s.spec).Info("Starting campaign scheduler...")

	if _, err := s.cronEngine.AddFunc(s.spec, s.runOnce); err != nil {
		return fmt.Errorf("could not add campaign cron job: %w", err)
	}

	s.cronEngine.Start()
	if next := s.Next(); !next.IsZero() {
		s.logger.WithField("next_run", next.Format(time.RFC3339)).Info("Campaign scheduler started")
	}
	return nil
}

// Next returns the time of the next scheduled run, or zero if there is none.
func (s *CampaignScheduler) Next() time.Time {
	entries := s.cronEngine.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *CampaignScheduler) runOnce() {
	if s.ctx.Err() != nil {
		return
	}
	s.logger.Info("Cron job triggered for campaign run.")
	summary, err := s.campaign.Run(s.ctx)
	if err != nil {
		if errors.Is(err, recipient.ErrNoRecipients) {
			s.logger.Warn("Scheduled campaign run skipped: no recipients")
			return
		}
		s.logger.WithError(err).Error("Scheduled campaign run failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"run_id":    summary.RunID,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
	}).Info("Scheduled campaign run finished")
}

func (s *CampaignScheduler) Stop() {
	s.logger.Info("Stopping campaign scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Campaign scheduler gracefully stopped.")
}
