package main

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/emilianohg/sleeptracker/internal/config"
	"github.com/emilianohg/sleeptracker/internal/db"
	"github.com/emilianohg/sleeptracker/internal/format"
	"github.com/emilianohg/sleeptracker/internal/logging"
	"github.com/emilianohg/sleeptracker/internal/repository"
	"github.com/emilianohg/sleeptracker/internal/tracker"
	"github.com/emilianohg/sleeptracker/internal/tui"
)

// app is everything a command needs, built once per process.
type app struct {
	cfg       *config.Config
	logger    *zap.SugaredLogger
	db        *sql.DB
	formatter format.Formatter
	tracker   *tracker.Tracker
}

func withApp(run func(a *app) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	database, err := db.OpenAndMigrate(cfg.DatabasePath)
	if err != nil {
		logger.Errorw("opening database failed", "path", cfg.DatabasePath, "error", err)
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	formatter := format.New(cfg.TimeFormat)
	t := tracker.New(repository.NewNightRepo(database), logger, tracker.WithFormatter(formatter.Nights))
	defer t.Close()

	return run(&app{
		cfg:       cfg,
		logger:    logger,
		db:        database,
		formatter: formatter,
		tracker:   t,
	})
}

func runTUI(a *app) error {
	a.logger.Debug("starting tui")
	return tui.Run(a.tracker, a.formatter)
}
