package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"associates/internal/pkg/logger"
	"associates/internal/platform/clients"
	"associates/internal/platform/config"
	"associates/internal/workers"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")
	once := flag.Bool("once", false, "Run the tracker immediately and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.Init(cfg.Logging)

	if len(cfg.Tracker.Keywords) == 0 {
		log.Fatal().Msg("tracker.keywords is empty; nothing to track")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := clients.NewDefaultClient(ctx, cfg.PAAPI)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build marketplace client")
	}

	tracker := workers.NewTracker(client, cfg.Tracker, nil)

	if *once {
		files, err := tracker.RunOnce(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Tracker run failed")
		}
		log.Info().Strs("files", files).Msg("Tracker run complete")
		return
	}

	log.Info().
		Strs("keywords", cfg.Tracker.Keywords).
		Int("run_hour", cfg.Tracker.RunHour).
		Msg("Starting trending tracker")
	tracker.Run(ctx)
}
