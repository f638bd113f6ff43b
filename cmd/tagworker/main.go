package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/quadlist/tagger/internal/listings"
	"github.com/quadlist/tagger/internal/tasks"
	"github.com/quadlist/tagger/pkg/tagger"
	"github.com/quadlist/tagger/pkg/tagger/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (optional)")
		dbPath     = flag.String("db", "", "Listings SQLite database (overrides config)")
		modelDir   = flag.String("model", "", "Model directory (overrides config)")
		sweep      = flag.Duration("sweep-interval", 30*time.Second, "How often to scan for untagged listings")
		batch      = flag.Int("batch", 100, "Max listings enqueued per sweep")
		debug      = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}
	if *dbPath != "" {
		cfg.Worker.DatabasePath = *dbPath
	}
	if *modelDir != "" {
		cfg.ModelDir = *modelDir
	}
	if cfg.Worker.DatabasePath == "" {
		log.Fatal().Msg("--db required (or worker.database_path in config)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := listings.OpenSQLite(ctx, cfg.Worker.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open listings database")
	}
	defer store.Close()

	engine := tagger.New(tagger.Options{ModelDir: cfg.ModelDir})
	metrics := tasks.NewMetrics(prometheus.DefaultRegisterer)

	queue := tasks.NewQueue(log)
	defer queue.Close()

	handler := tasks.NewHandler(engine, store, log, metrics)
	router, err := tasks.NewRouter(queue, cfg.Worker.Topic, handler, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		if err := router.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("router stopped")
		}
	}()
	<-router.Running()

	publisher := tasks.NewPublisher(queue, cfg.Worker.Topic)
	sweeper := tasks.NewSweeper(store, publisher, log, *sweep, *batch)

	log.Info().
		Str("db", cfg.Worker.DatabasePath).
		Str("model", cfg.ModelDir).
		Dur("sweep_interval", *sweep).
		Msg("tagging worker started")

	if err := sweeper.Run(ctx); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("sweeper stopped")
	}

	log.Info().Msg("shutting down")
	if err := router.Close(); err != nil {
		log.Error().Err(err).Msg("router close failed")
	}
}
