package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/logger"
)

// MaxEvents caps events.size so the panel stays a log, not a history.
const MaxEvents = 1000

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but sockwatch only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest sockwatch release.")
	}

	if err := validateInterval(cfg.Interval); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Set 'interval' to something like '1s' or '5s' in your .sockwatch.yaml.")
	}

	if err := validateFocus(cfg.StartFocus); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check 'start_focus' in your .sockwatch.yaml.")
	}

	if err := validateLog(cfg.Log); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'log' section in your .sockwatch.yaml.")
	}

	if err := validateOutput(cfg.Output); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'output' section in your .sockwatch.yaml.")
	}

	if err := validateEvents(cfg.Events); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'events' section in your .sockwatch.yaml.")
	}

	return nil
}

func validateInterval(d time.Duration) error {
	if d < MinInterval {
		return fmt.Errorf("interval %v is too short - the minimum is %v", d, MinInterval)
	}
	return nil
}

func validateFocus(focus string) error {
	validFocus := map[string]bool{"none": true, "tcp": true, "udp": true, "": true}
	if !validFocus[strings.ToLower(focus)] {
		return fmt.Errorf("start_focus '%s' isn't valid - use 'none', 'tcp', or 'udp'", focus)
	}
	return nil
}

func validateLog(l LogConfig) error {
	if _, err := logger.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level '%s' isn't valid - use 'debug', 'info', 'warn', or 'error'", l.Level)
	}
	return nil
}

// validateOutput checks output configuration.
func validateOutput(out OutputConfig) error {
	validColors := map[string]bool{"auto": true, "always": true, "never": true, "": true}
	if !validColors[out.Color] {
		return fmt.Errorf("output.color '%s' isn't valid - use 'auto', 'always', or 'never'", out.Color)
	}
	return nil
}

func validateEvents(ev EventsConfig) error {
	if ev.Size < 1 {
		return fmt.Errorf("events.size must be at least 1, got %d", ev.Size)
	}
	if ev.Size > MaxEvents {
		return fmt.Errorf("events.size %d is over the limit of %d", ev.Size, MaxEvents)
	}
	return nil
}
