package cli

import (
	"context"

	"github.com/rileyhilliard/sockwatch/internal/config"
	"github.com/rileyhilliard/sockwatch/internal/dashboard"
	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/logger"
	"github.com/rileyhilliard/sockwatch/internal/monitor"
	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
	"github.com/rileyhilliard/sockwatch/internal/ui"
)

// dashboardCommand opens the live socket dashboard.
func dashboardCommand(ctx context.Context, s *settings) error {
	cfg := s.Config

	log, closer, err := logger.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file: "+cfg.Log.File,
			"Check the directory exists and is writable, or drop --log-file")
	}
	defer closer.Close()

	ui.ApplyColorMode(cfg.Output.Color)

	focus, err := dashboard.ParseFocus(cfg.StartFocus)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid start focus: "+cfg.StartFocus,
			"Use one of: none, tcp, udp")
	}

	log.Info("starting dashboard", "interval", cfg.Interval, "focus", focus, "config", s.Path)

	state := dashboard.New(
		sockets.NewGopsutilEnumerator(),
		procinfo.NewGopsutilInspector(),
		dashboard.WithLogger(log),
		dashboard.WithFocus(focus),
	)

	opts := monitor.Options{
		Interval:   cfg.Interval,
		EventsSize: cfg.Events.Size,
		Logger:     log,
	}
	if s.Path != "" {
		watcher, err := config.NewWatcher(s.Path)
		if err != nil {
			log.Warn("config changes will not be picked up", "path", s.Path, "err", err)
		} else {
			defer watcher.Close()
			opts.ConfigChanges = watcher.Changes()
			opts.Reload = s.reloadInterval
		}
	}

	err = monitor.Run(ctx, state, opts)
	if err != nil && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrUI,
			"Dashboard stopped unexpectedly",
			"Make sure sockwatch runs in an interactive terminal")
	}

	log.Info("dashboard closed")
	return nil
}
