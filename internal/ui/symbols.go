package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess = "✓" // Command succeeded
	SymbolFail    = "✗" // Command failed
	SymbolPending = "○" // Nothing to show yet
)
