package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Color modes accepted by the output.color setting.
const (
	ColorModeAuto   = "auto"
	ColorModeAlways = "always"
	ColorModeNever  = "never"
)

// SuccessStyle renders text in the success color.
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle renders text in the error color.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}

// MutedStyle renders secondary text.
func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted)
}

// DisableColors switches lipgloss to monochrome output.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// ApplyColorMode sets the lipgloss color profile for the given mode and
// reports whether colors are enabled afterwards.
func ApplyColorMode(mode string) bool {
	switch mode {
	case ColorModeNever:
		DisableColors()
		return false
	case ColorModeAlways:
		profile := termenv.EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
		lipgloss.SetColorProfile(profile)
		return true
	default:
		if !IsTerminal(os.Stdout) {
			DisableColors()
			return false
		}
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return true
	}
}
