package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sockwatch/internal/dashboard"
)

// keyMap lists every binding of the dashboard. It implements help.KeyMap.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Close    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous socket")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next socket")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "focus left")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "focus right")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("pgup", "scroll info up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "f"), key.WithHelp("pgdn", "scroll info down")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "force refresh")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
	Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp is shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Help, k.Quit}
}

// FullHelp is shown in the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PageUp, k.PageDown, k.Refresh},
		{k.Help, k.Close, k.Quit},
	}
}

// dashboardKey translates a key press into the dashboard's navigation keys.
func (k keyMap) dashboardKey(msg tea.KeyMsg) dashboard.Key {
	switch {
	case key.Matches(msg, k.Quit):
		return dashboard.KeyQuit
	case key.Matches(msg, k.Up):
		return dashboard.KeyUp
	case key.Matches(msg, k.Down):
		return dashboard.KeyDown
	case key.Matches(msg, k.Left):
		return dashboard.KeyLeft
	case key.Matches(msg, k.Right):
		return dashboard.KeyRight
	default:
		return dashboard.KeyOther
	}
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	// If help is showing, Esc closes it and everything else but quit is swallowed
	if m.showHelp {
		if key.Matches(msg, m.keys.Close) {
			m.showHelp = false
			return true, nil
		}
		if !key.Matches(msg, m.keys.Quit) {
			return true, nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Refresh):
		return true, forceRefreshCmd

	case key.Matches(msg, m.keys.PageUp):
		m.info.PageUp()
		return true, nil

	case key.Matches(msg, m.keys.PageDown):
		m.info.PageDown()
		return true, nil
	}

	k := m.keys.dashboardKey(msg)
	if k == dashboard.KeyOther {
		return false, nil
	}

	m.state.OnKey(k)
	if m.state.ShouldQuit() {
		m.quitting = true
		return true, tea.Quit
	}

	m.syncInfo()
	return true, nil
}
