// Package monitor implements the interactive socket dashboard on top of
// Bubble Tea.
//
// # Architecture
//
// The package follows The Elm Architecture (Model-Update-View pattern):
//
//   - Model: wraps a dashboard.State plus view-only state (event log,
//     help overlay, info viewport, terminal size)
//   - Update: ticks refresh the state, key presses navigate it
//   - View: renders the socket lists, status line, socket info and events
//
// # Message Flow
//
//  1. Init sends a refreshMsg so the first snapshot appears immediately
//  2. tickMsg fires at the configured interval and calls State.Refresh
//     synchronously inside Update
//  3. key presses are translated to dashboard keys and applied to the state
//  4. View() re-renders from the state's accessors
//
// The state is only touched from Update, so no locking is needed.
//
// # Event Log
//
// EventLog is a ring buffer of leveled events (INFO, WARNING, ERROR,
// CRITICAL) describing refresh outcomes: enumeration failures, recoveries
// and socket count changes. Each list panel title also carries a sparkline
// of its socket count over recent refreshes.
//
// # Config Reload
//
// When Options.ConfigChanges and Options.Reload are set, every signal on the
// channel re-reads the refresh interval. The new interval applies from the
// next scheduled tick.
//
// # Keyboard Shortcuts
//
//	←/→, h/l    - Move focus between None, TCP and UDP
//	↑/↓, k/j    - Move the focused cursor (wraps around)
//	PgUp/PgDn   - Scroll the socket info panel
//	r           - Force refresh
//	?           - Toggle help overlay
//	q, Ctrl+C   - Quit
package monitor
