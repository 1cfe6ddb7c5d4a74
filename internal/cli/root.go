package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/sockwatch/internal/ui"
)

// Global flags shared by every command.
var (
	cfgFile      string
	logFileFlag  string
	logLevelFlag string
	colorFlag    string
)

// Dashboard flags on the root command.
var (
	intervalFlag string
	focusFlag    string
)

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "sockwatch",
	Short: "Live dashboard of TCP and UDP sockets and the processes that own them",
	Long: `sockwatch lists the TCP and UDP sockets on this machine, refreshes them
on a fixed interval, and shows details about the processes that own the
selected socket.

Keyboard shortcuts:
  left/h, right/l  Focus the TCP or UDP list
  up/k, down/j     Move the selection (wraps around)
  pgup/pgdown      Scroll the socket info panel
  r                Force refresh
  ?                Show help
  q / Ctrl+C       Quit

Examples:
  sockwatch
  sockwatch --interval 2s --focus tcp
  sockwatch --log-file ~/.cache/sockwatch.log --log-level debug
  sockwatch list --proto tcp`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	Args:                       cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := settingsFromFlags(cmd)
		if err != nil {
			return err
		}
		return dashboardCommand(cmd.Context(), opts)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: .sockwatch.yaml, then ~/.config/sockwatch/config.yaml)")
	pf.StringVar(&logFileFlag, "log-file", "", "append diagnostic logs to this file")
	pf.StringVar(&logLevelFlag, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&colorFlag, "color", "", "color output: auto, always, never")

	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "refresh interval (e.g., 500ms, 2s)")
	rootCmd.Flags().StringVar(&focusFlag, "focus", "", "list focused at startup: none, tcp, udp")
}

// Execute runs the root command and exits with status 1 on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}

	if isUnknownCommandError(err) {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle().Render(ui.SymbolFail+" "+err.Error()))
		if name := extractUnknownCommand(err); name != "" {
			if suggestions := rootCmd.SuggestionsFor(name); len(suggestions) > 0 {
				fmt.Fprintf(os.Stderr, "\n  Did you mean %s?\n", strings.Join(suggestions, ", "))
			}
		}
		fmt.Fprintln(os.Stderr, "\n  Run 'sockwatch --help' for usage.")
		os.Exit(1)
	}

	if machineMode {
		_ = WriteJSONFromError(os.Stdout, err)
		os.Exit(1)
	}

	fmt.Fprint(os.Stderr, err.Error())
	if !strings.HasSuffix(err.Error(), "\n") {
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(1)
}

// isUnknownCommandError reports whether cobra rejected the command line itself.
func isUnknownCommandError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag")
}

// extractUnknownCommand pulls the quoted command name out of cobra's
// `unknown command "foo" for "sockwatch"` message.
func extractUnknownCommand(err error) string {
	msg := err.Error()
	start := strings.Index(msg, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(msg[start+1:], `"`)
	if end < 0 {
		return ""
	}
	return msg[start+1 : start+1+end]
}
