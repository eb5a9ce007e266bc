package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"promo_broadcast_bot/internal/app"
	"promo_broadcast_bot/internal/domain/content"
	"promo_broadcast_bot/internal/infra/config"
	"promo_broadcast_bot/internal/infra/filestore"
	"promo_broadcast_bot/internal/infra/logger"
	"promo_broadcast_bot/internal/infra/scheduler"
	"promo_broadcast_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run())
}

func run() int {
	var flags config.Flags
	flag.StringVar(&flags.Mode, "mode", "test", "run mode: 'test' (send only to TELEGRAM_TEST_USER_ID) or 'production' (send to every recipient)")
	flag.StringVar(&flags.Source, "source", "file", "recipient source: 'file' (JSON/YAML list), 'database' (MongoDB) or 'postgres'")
	images := flag.Int("images", 0, "number of images to send (0-3); overrides NUM_IMAGES")
	flag.StringVar(&flags.Schedule, "schedule", "", "optional cron spec; repeat the campaign on this schedule until interrupted")
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "images" {
			flags.Images = images
		}
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.WithError(err).Error("Could not load application configuration")
		return 1
	}
	logger.Init(cfg, flags.Mode, flags.Source)
	mainLogger := logger.Component("main")

	rc, err := cfg.RunConfig(flags)
	if err != nil {
		mainLogger.WithError(err).Error("Invalid configuration, nothing was sent")
		return 1
	}
	if flags.Images != nil {
		mainLogger.Infof("Number of images set to: %d", rc.ImageCount)
	}
	mainLogger.WithFields(logrus.Fields{
		"mode":   rc.Mode,
		"source": rc.Source,
		"images": rc.ImageCount,
		"delay":  rc.MessageDelay.String(),
	}).Info("Configuration loaded")

	source, err := app.NewRecipientSource(rc, logger.Component("recipients"))
	if err != nil {
		mainLogger.WithError(err).Error("Could not create recipient source")
		return 1
	}

	bot, err := telegram.NewBot(cfg.TelegramToken, logger.Component("telebot"))
	if err != nil {
		mainLogger.WithError(err).Error("Could not create Telegram bot")
		return 1
	}
	messenger := telegram.NewTelebotAdapter(bot, cfg.MaxSendsPerSecond, logger.Component("telegram"))

	clock := app.RealClock()
	deliverer := app.NewDeliverer(messenger, rc.ImagePaths[:], rc.MessagePause, clock, logger.Component("delivery"))
	dispatcher := app.NewDispatcher(deliverer, rc.MessageDelay, clock, logger.Component("dispatch"))
	contentLogger := logger.Component("content")
	loadContent := func() content.Message { return filestore.LoadContent(rc.ContentFilePath, contentLogger) }
	campaign := app.NewCampaign(rc, source, loadContent, dispatcher, logger.Component("campaign"))

	if rc.Schedule == "" {
		if _, err := campaign.Run(ctx); err != nil {
			return 1
		}
		return 0
	}

	campaignScheduler := scheduler.NewCampaignScheduler(ctx, campaign, rc.Schedule, logger.Component("scheduler"))
	if err := campaignScheduler.Start(); err != nil {
		mainLogger.WithError(err).Error("Could not start campaign scheduler")
		return 1
	}
	<-ctx.Done() // Block until a signal is received

	mainLogger.Info("Shutting down application...")
	campaignScheduler.Stop()
	mainLogger.Info("Application shut down gracefully.")
	return 0
}
