package monitor

import (
	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F") // Deep void
	ColorSurfaceBg = lipgloss.Color("#12121A") // Dark surface
	ColorBorder    = lipgloss.Color("#2A2A4A") // Glass border (purple tint)

	// Severity colors - neon style
	ColorHealthy  = lipgloss.Color("#39FF14") // Neon green
	ColorWarning  = lipgloss.Color("#FFAA00") // Electric amber
	ColorCritical = lipgloss.Color("#FF0055") // Hot red-pink

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0") // Lavender gray
	ColorTextMuted     = lipgloss.Color("#6B6B8D") // Purple-gray

	ColorAccent    = lipgloss.Color("#FF2E97") // Neon pink
	ColorAccentDim = lipgloss.Color("#BF40FF") // Neon purple

	// Selection highlight per protocol list
	ColorTCPSelected = lipgloss.Color("#39FF14")
	ColorUDPSelected = lipgloss.Color("#FFE066")
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = PanelStyle.
				BorderForeground(ColorAccent)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccentDim).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	TCPSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorTCPSelected).
				Bold(true)

	UDPSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorUDPSelected).
				Bold(true)

	TrendStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// SelectionMarker prefixes the highlighted row of a socket list.
const SelectionMarker = ">"

// LevelStyle returns the style an event of the given level is rendered with.
func LevelStyle(l Level) lipgloss.Style {
	switch l {
	case LevelCritical:
		return lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)
	case LevelError:
		return lipgloss.NewStyle().Foreground(ColorCritical)
	case LevelWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	default:
		return lipgloss.NewStyle().Foreground(ColorTextSecondary)
	}
}
