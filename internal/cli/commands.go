package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/logger"
	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
	"github.com/rileyhilliard/sockwatch/internal/ui"
)

// Command flags
var (
	listProtoFlag  string
	listOutputFlag string
	listJSONFlag   bool

	initIntervalFlag       string
	initFocusFlag          string
	initForce              bool
	initNonInteractiveFlag bool
	initGlobalFlag         bool
)

// listCmd prints the current sockets once
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the current sockets once",
	Long: `Enumerate TCP and UDP sockets once and print them with their owning
processes, then exit.

Examples:
  sockwatch list
  sockwatch list --proto udp
  sockwatch list --json
  sockwatch list --output yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := listOutputFlag
		if listJSONFlag {
			output = outputJSON
		}
		machineMode = output == outputJSON

		s, err := resolveSettings(flagOverrides{
			Config:   cfgFile,
			LogFile:  logFileFlag,
			LogLevel: logLevelFlag,
			Color:    colorFlag,
		})
		if err != nil {
			return err
		}
		ui.ApplyColorMode(s.Config.Output.Color)

		log, closer, err := logger.Open(s.Config.Log.File, s.Config.Log.Level)
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot open log file: "+s.Config.Log.File,
				"Check the directory exists and is writable, or drop --log-file")
		}
		defer closer.Close()

		return listCommand(cmd.Context(), cmd.OutOrStdout(),
			sockets.NewGopsutilEnumerator(), procinfo.NewGopsutilInspector(),
			ListOptions{Proto: listProtoFlag, Output: output, Logger: log})
	},
}

// initCmd creates a config file
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sockwatch.yaml config file",
	Long: `Create a sockwatch configuration file in the current directory, or the
global one with --global.

Examples:
  sockwatch init
  sockwatch init --global
  sockwatch init --non-interactive --interval 2s --focus tcp
  sockwatch init --log-file ~/.cache/sockwatch/sockwatch.log`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := Init(cmd.OutOrStdout(), InitOptions{
			Global:         initGlobalFlag,
			Interval:       initIntervalFlag,
			Focus:          initFocusFlag,
			LogFile:        logFileFlag,
			Overwrite:      initForce,
			NonInteractive: initNonInteractiveFlag,
		})
		return err
	},
}

// configCmd groups config file helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or edit the sockwatch config file",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one value in the config file in use",
	Long: `Set one value in the config file in use, keeping comments and layout.

Keys: interval, start_focus, log.file, log.level, output.color, events.size

Examples:
  sockwatch config set interval 2s
  sockwatch config set log.level debug`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: settableKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSetCommand(cmd.OutOrStdout(), cfgFile, args[0], args[1])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configPathCommand(cmd.OutOrStdout(), cfgFile)
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for sockwatch.

Examples:
  # Bash
  sockwatch completion bash > /etc/bash_completion.d/sockwatch

  # Zsh
  sockwatch completion zsh > "${fpath[1]}/_sockwatch"

  # Fish
  sockwatch completion fish > ~/.config/fish/completions/sockwatch.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// list command flags
	listCmd.Flags().StringVar(&listProtoFlag, "proto", "all", "protocols to list: tcp, udp, all")
	listCmd.Flags().StringVarP(&listOutputFlag, "output", "o", outputTable, "output format: table, json, yaml")
	listCmd.Flags().BoolVar(&listJSONFlag, "json", false, "shorthand for --output json")

	// init command flags
	initCmd.Flags().StringVar(&initIntervalFlag, "interval", "", "refresh interval to write (e.g., 2s)")
	initCmd.Flags().StringVar(&initFocusFlag, "focus", "", "start focus to write: none, tcp, udp")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractiveFlag, "non-interactive", false, "skip prompts and use flags or defaults")
	initCmd.Flags().BoolVar(&initGlobalFlag, "global", false, "write ~/.config/sockwatch/config.yaml")

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)

	// Register all commands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
