// Package ui provides the styled, non-interactive terminal output used by
// sockwatch commands outside the dashboard.
//
// # Color Scheme
//
// Colors are defined as ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Completed actions
//	ColorError     (red)    - Failures and errors
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text
//	ColorSecondary (blue)   - Headings
//
// ApplyColorMode maps the output.color setting (auto, always, never) onto the
// lipgloss color profile. In auto mode colors are kept only when stdout is a
// terminal.
//
// # Tables
//
// RenderSimpleTable renders a bubbles table without focus or selection for
// plain CLI output such as "sockwatch list".
package ui
