package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".sockwatch.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/sockwatch"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes environment overrides, e.g. SOCKWATCH_INTERVAL=2s.
	EnvPrefix = "SOCKWATCH"
)

// Load reads config from the specified path. Environment overrides are
// applied on top of the file.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'sockwatch init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .sockwatch.yaml in current directory
// 3. .sockwatch.yaml in parent directories (stops at git root or home)
// 4. ~/.config/sockwatch/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	if !isGitRoot(cwd) {
		dir := cwd
		for {
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			if home != "" && parent == home {
				break
			}
			dir = parent

			configPath := filepath.Join(dir, ConfigFileName)
			if _, err := os.Stat(configPath); err == nil {
				return configPath, nil
			}

			if isGitRoot(dir) {
				break
			}
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := GlobalPath(home)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// GlobalPath returns the global config location under home.
func GlobalPath(home string) string {
	return filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
}

// LoadOrDefault finds and loads the config, or returns defaults with
// environment overrides applied when no file exists.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, "", err
	}

	if path == "" {
		cfg, err := parseConfig(newViper(), "environment")
		return cfg, "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.StartFocus = strings.ToLower(strings.TrimSpace(cfg.StartFocus))
	cfg.Output.Color = strings.ToLower(strings.TrimSpace(cfg.Output.Color))
	cfg.Log.File = ExpandTilde(Expand(cfg.Log.File))

	return cfg, nil
}

// setDefaults registers every key so environment overrides reach Unmarshal
// even when the file leaves them out.
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("interval", def.Interval.String())
	v.SetDefault("start_focus", def.StartFocus)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("output.color", def.Output.Color)
	v.SetDefault("events.size", def.Events.Size)
}

// isGitRoot checks if a directory is a git repository root.
func isGitRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
