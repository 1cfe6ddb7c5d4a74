package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rileyhilliard/sockwatch/internal/config"
	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/ui"
)

// settableKeys are the dotted keys accepted by "config set".
var settableKeys = []string{
	"interval",
	"start_focus",
	"log.file",
	"log.level",
	"output.color",
	"events.size",
}

// configSetCommand writes one key into the config file in use. The file is
// restored when the new value does not validate.
func configSetCommand(w io.Writer, explicit, key, value string) error {
	key = strings.ToLower(key)
	if !slices.Contains(settableKeys, key) {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown config key: %s", key),
			"Settable keys: "+strings.Join(settableKeys, ", "))
	}

	path, err := config.Find(explicit)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"Config file not found",
			"Run 'sockwatch init' to create one")
	}

	original, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Cannot read config file: %s", path),
			"Check file permissions")
	}

	if err := config.SetValue(path, key, value); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to update %s", path),
			"Check the file is valid YAML")
	}

	cfg, err := config.Load(path)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		if restoreErr := os.WriteFile(path, original, 0644); restoreErr != nil {
			return errors.WrapWithCode(restoreErr, errors.ErrConfig,
				fmt.Sprintf("Failed to restore %s after an invalid update", path),
				"Fix the file by hand")
		}
		return err
	}

	fmt.Fprintf(w, "%s Set %s = %s in %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), key, value, path)
	return nil
}

// configPathCommand prints the config file in use, or a note when running on defaults.
func configPathCommand(w io.Writer, explicit string) error {
	path, err := config.Find(explicit)
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Fprintln(w, ui.MutedStyle().Render("no config file found, using defaults"))
		return nil
	}
	fmt.Fprintln(w, path)
	return nil
}
