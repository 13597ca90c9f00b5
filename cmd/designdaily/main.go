package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"designdaily/internal/app"
	"designdaily/internal/config"
	"designdaily/internal/logging"
)

func main() {
	once := flag.Bool("once", false, "run one scrape-and-curate cycle and exit")
	scrapeOnly := flag.Bool("scrape-only", false, "run the scrapers once and exit")
	curateOnly := flag.Bool("curate-only", false, "curate today from the stored corpus and exit")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	switch {
	case *scrapeOnly:
		err = application.ScrapeOnce(ctx)
	case *curateOnly:
		err = application.CurateOnce(ctx)
	case *once:
		err = application.RunOnce(ctx)
	default:
		err = application.Run(ctx)
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
