package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sockwatch/internal/config"
	"github.com/rileyhilliard/sockwatch/internal/errors"
)

// flagOverrides holds command-line values that take precedence over the
// config file. Empty strings mean "not set".
type flagOverrides struct {
	Config   string
	LogFile  string
	LogLevel string
	Color    string
	Interval string
	Focus    string
}

// settings is the resolved configuration for one command invocation.
type settings struct {
	Config *config.Config
	Path   string // config file in use, empty when running on defaults

	overrides flagOverrides
}

// settingsFromFlags resolves settings from the global and dashboard flags.
func settingsFromFlags(cmd *cobra.Command) (*settings, error) {
	o := flagOverrides{
		Config:   cfgFile,
		LogFile:  logFileFlag,
		LogLevel: logLevelFlag,
		Color:    colorFlag,
	}
	if f := cmd.Flags().Lookup("interval"); f != nil {
		o.Interval = f.Value.String()
	}
	if f := cmd.Flags().Lookup("focus"); f != nil {
		o.Focus = f.Value.String()
	}
	return resolveSettings(o)
}

// resolveSettings loads the config, applies overrides and validates the result.
func resolveSettings(o flagOverrides) (*settings, error) {
	cfg, path, err := config.LoadOrDefault(o.Config)
	if err != nil {
		return nil, err
	}

	if o.Interval != "" {
		d, err := time.ParseDuration(o.Interval)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", o.Interval),
				"Use a valid duration like 500ms, 2s, or 1m")
		}
		cfg.Interval = d
	}
	if o.Focus != "" {
		cfg.StartFocus = strings.ToLower(o.Focus)
	}
	if o.LogFile != "" {
		cfg.Log.File = config.ExpandTilde(config.Expand(o.LogFile))
	}
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Color != "" {
		cfg.Output.Color = strings.ToLower(o.Color)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return &settings{Config: cfg, Path: path, overrides: o}, nil
}

// reloadInterval re-reads the config file with the same overrides and
// returns the refresh interval it now asks for.
func (s *settings) reloadInterval() (time.Duration, error) {
	fresh, err := resolveSettings(s.overrides)
	if err != nil {
		return 0, err
	}
	return fresh.Config.Interval, nil
}
