// Package cli implements the sockwatch command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a plain function that takes its dependencies (writer,
// socket enumerator, process inspector) as arguments so it can be tested
// without a terminal.
//
// # Command Structure
//
// The root command "sockwatch" opens the live dashboard. Subcommands:
//
//	sockwatch list             - Print the sockets once (table, JSON, YAML)
//	sockwatch init             - Create .sockwatch.yaml
//	sockwatch config set k v   - Edit one key of the config in use
//	sockwatch config path      - Show which config file is in use
//	sockwatch version          - Build information
//	sockwatch completion SHELL - Shell completion scripts
//
// # Flag Handling
//
// Global flags (--config, --log-file, --log-level, --color) are defined on
// the root command and available to all subcommands. They override the
// matching keys of the config file; resolveSettings applies them and
// validates the result before any command runs.
//
// # Machine Output
//
// "list --json" wraps its payload in JSONEnvelope. When machine mode is on,
// Execute writes failures as an envelope on stdout as well.
package cli
