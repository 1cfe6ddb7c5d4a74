package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/sockwatch/internal/config"
	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write .sockwatch.yaml into; cwd when empty
	Global         bool   // Write ~/.config/sockwatch/config.yaml instead
	Interval       string // Pre-specified refresh interval
	Focus          string // Pre-specified start focus
	LogFile        string // Pre-specified log file
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

const configHeader = `# sockwatch configuration
# Run 'sockwatch' to open the dashboard or 'sockwatch list' for a one-shot table.
# Change a value with: sockwatch config set <key> <value>

`

// initTarget returns the path init writes to.
func initTarget(opts InitOptions) (string, error) {
	if opts.Global {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot determine home directory",
				"Set $HOME or write a project config without --global")
		}
		return config.GlobalPath(home), nil
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, config.ConfigFileName), nil
}

// checkExistingConfig decides whether an existing file may be replaced.
// It returns false when the user declined.
func checkExistingConfig(path string, opts InitOptions) (bool, error) {
	if _, err := os.Stat(path); err != nil || opts.Overwrite {
		return true, nil
	}

	if opts.NonInteractive {
		return false, errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite")
	}

	var overwrite bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
				Value(&overwrite),
		),
	)
	if err := form.Run(); err != nil {
		return false, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Try running with --force to overwrite")
	}
	return overwrite, nil
}

// buildInitConfig applies the chosen values on top of the defaults.
func buildInitConfig(opts InitOptions) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if opts.Interval != "" {
		d, err := time.ParseDuration(opts.Interval)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("Invalid interval: %s", opts.Interval),
				"Use a valid duration like 500ms, 2s, or 1m")
		}
		cfg.Interval = d
	}
	if opts.Focus != "" {
		cfg.StartFocus = strings.ToLower(opts.Focus)
	}
	cfg.Log.File = strings.TrimSpace(opts.LogFile)

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// promptInitValues asks for the values not given on the command line.
func promptInitValues(opts *InitOptions) error {
	if opts.Interval == "" {
		opts.Interval = config.DefaultConfig().Interval.String()
	}
	if opts.Focus == "" {
		opts.Focus = "none"
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval").
				Description("How often the socket lists are re-read").
				Placeholder("1s").
				Value(&opts.Interval).
				Validate(func(s string) error {
					d, err := time.ParseDuration(strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("not a duration: %s", s)
					}
					if d < config.MinInterval {
						return fmt.Errorf("must be at least %s", config.MinInterval)
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("List focused at startup").
				Options(
					huh.NewOption("None", "none"),
					huh.NewOption("TCP", "tcp"),
					huh.NewOption("UDP", "udp"),
				).
				Value(&opts.Focus),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Log file (optional)").
				Description("Diagnostic log; supports ~, ${HOME} and ${USER}").
				Placeholder("~/.cache/sockwatch/sockwatch.log (leave empty to skip)").
				Value(&opts.LogFile),
		),
	)

	if err := form.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	opts.Interval = strings.TrimSpace(opts.Interval)
	return nil
}

// Init creates a new sockwatch configuration file and returns its path.
func Init(w io.Writer, opts InitOptions) (string, error) {
	path, err := initTarget(opts)
	if err != nil {
		return "", err
	}

	ok, err := checkExistingConfig(path, opts)
	if err != nil {
		return "", err
	}
	if !ok {
		fmt.Fprintln(w, "Cancelled.")
		return "", nil
	}

	if !opts.NonInteractive {
		if err := promptInitValues(&opts); err != nil {
			return "", err
		}
	}

	cfg, err := buildInitConfig(opts)
	if err != nil {
		return "", err
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to create config directory: %s", filepath.Dir(path)),
			"Check directory permissions")
	}
	if err := os.WriteFile(path, []byte(configHeader+string(data)), 0644); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", path),
			"Check directory permissions")
	}

	fmt.Fprintf(w, "%s Created %s\n\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	fmt.Fprintln(w, "Next steps:")
	fmt.Fprintln(w, "  sockwatch              - Open the dashboard")
	fmt.Fprintln(w, "  sockwatch list         - Print the sockets once")
	fmt.Fprintln(w, "  sockwatch config path  - Show which config is in use")

	return path, nil
}
