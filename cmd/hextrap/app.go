package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/hextrap/internal/config"
	"github.com/vovakirdan/hextrap/internal/core"
	"github.com/vovakirdan/hextrap/internal/games/hextrap"
	"github.com/vovakirdan/hextrap/internal/registry"
	"github.com/vovakirdan/hextrap/internal/stats"
	"github.com/vovakirdan/hextrap/internal/storage"
)

// app holds what every command shares: configuration, logger and stores.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	logFile *os.File
	stats   *stats.Store
	history *storage.Store
}

// openApp loads the configuration and opens the stores. Full-screen
// commands set interactive so that logs stay off the terminal.
func openApp(interactive bool) (*app, error) {
	a := &app{}

	if err := a.openLogger(interactive); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg
	hextrap.RegisterConfigVariants(cfg)

	statsPath := flagStats
	if statsPath == "" {
		statsPath = cfg.Paths.Stats
	}
	a.stats, err = stats.Open(statsPath)
	if err != nil {
		a.Close()
		return nil, err
	}

	dbPath := flagDBPath
	if dbPath == "" {
		dbPath = cfg.Paths.History
	}
	a.history, err = storage.Open(dbPath)
	if err != nil {
		// History is supplementary; play goes on without it.
		a.logger.Warn("could not open history database", "path", dbPath, "err", err)
		a.history = nil
	}

	return a, nil
}

func (a *app) openLogger(interactive bool) error {
	var w io.Writer = os.Stderr
	level := log.InfoLevel

	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		a.logFile = f
		w = f
		level = log.DebugLevel
	case interactive:
		w = io.Discard
	}

	a.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "hextrap",
		Level:           level,
	})
	return nil
}

// env returns the services handed to every game.
func (a *app) env() registry.Env {
	env := registry.Env{
		Config: a.cfg,
		Stats:  a.stats,
		Logger: a.logger,
	}
	if a.history != nil {
		env.History = a.history
	}
	return env
}

// runtime returns the runtime config for the current terminal.
func (a *app) runtime() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = a.cfg.Timing.TickRate
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// Close flushes the stats and closes the stores.
func (a *app) Close() error {
	var errs []error
	if a.stats != nil {
		errs = append(errs, a.stats.Flush())
	}
	if a.history != nil {
		errs = append(errs, a.history.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
