package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// MinInterval is the shortest refresh interval accepted. Enumerating every
// socket and process more often than this just burns CPU.
const MinInterval = 250 * time.Millisecond

// Config represents the complete .sockwatch.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval between dashboard refreshes.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// StartFocus is the list focused when the dashboard opens: "none", "tcp" or "udp".
	StartFocus string `yaml:"start_focus" mapstructure:"start_focus"`

	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Events EventsConfig `yaml:"events" mapstructure:"events"`
}

// LogConfig controls the diagnostic log. The dashboard owns the terminal,
// so logging only happens when File is set.
type LogConfig struct {
	// File to append log lines to. Supports ~ and ${HOME}/${USER} expansion.
	File string `yaml:"file" mapstructure:"file"`

	// Level: "debug", "info", "warn" or "error".
	Level string `yaml:"level" mapstructure:"level"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// EventsConfig controls the dashboard's event log panel.
type EventsConfig struct {
	// Size is how many events the panel keeps.
	Size int `yaml:"size" mapstructure:"size"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentConfigVersion,
		Interval:   time.Second,
		StartFocus: "none",
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Color: "auto",
		},
		Events: EventsConfig{
			Size: 50,
		},
	}
}
