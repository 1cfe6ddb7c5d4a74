package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/rileyhilliard/sockwatch/internal/dashboard"
	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/logger"
)

// DefaultInterval is used when Options.Interval is zero.
const DefaultInterval = time.Second

// criticalAfter is how many failed refreshes in a row raise a CRITICAL event.
const criticalAfter = 5

// Fallback terminal size until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 120
	defaultHeight = 36
)

// Options configures a Model.
type Options struct {
	Interval   time.Duration
	EventsSize int
	Logger     *log.Logger

	// ConfigChanges signals that the config file was edited. Reload is
	// then called for the new refresh interval. Both are optional.
	ConfigChanges <-chan struct{}
	Reload        func() (time.Duration, error)
}

// Model is the Bubble Tea model for the socket dashboard. It drives a
// dashboard.State: ticks refresh it, key presses navigate it, View reads it.
type Model struct {
	ctx      context.Context
	state    *dashboard.State
	events   *EventLog
	logger   *log.Logger
	keys     keyMap
	help     help.Model
	info     viewport.Model
	interval time.Duration
	now      func() time.Time
	changes  <-chan struct{}
	reload   func() (time.Duration, error)

	width    int
	height   int
	showHelp bool
	quitting bool

	refreshes   int
	failStreak  int
	lastTCP     int
	lastUDP     int
	infoFocus   dashboard.Focus
	infoCursor  int
	infoContent string
	tcpTrend    countTrend
	udpTrend    countTrend
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// refreshMsg asks for an immediate refresh outside the tick schedule.
type refreshMsg struct{}

func forceRefreshCmd() tea.Msg { return refreshMsg{} }

// configChangedMsg reports an edit of the config file.
type configChangedMsg struct{}

// waitForConfigCmd blocks until the next config change. It returns nil when
// no change channel is set or the channel is closed.
func (m Model) waitForConfigCmd() tea.Cmd {
	if m.changes == nil || m.reload == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return configChangedMsg{}
	}
}

// NewModel creates a dashboard model around state. ctx is passed to every
// collaborator call the state makes.
func NewModel(ctx context.Context, state *dashboard.State, opts Options) Model {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}

	m := Model{
		ctx:        ctx,
		state:      state,
		events:     NewEventLog(opts.EventsSize),
		logger:     opts.Logger,
		keys:       keys,
		help:       help.New(),
		info:       viewport.New(defaultWidth, 1),
		interval:   opts.Interval,
		now:        time.Now,
		changes:    opts.ConfigChanges,
		reload:     opts.Reload,
		width:      defaultWidth,
		height:     defaultHeight,
		infoCursor: -1,
	}
	m.resize()
	return m
}

// Init refreshes right away and then on every interval.
func (m Model) Init() tea.Cmd {
	if wait := m.waitForConfigCmd(); wait != nil {
		return tea.Batch(forceRefreshCmd, wait)
	}
	return forceRefreshCmd
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tickMsg:
		m.refresh()
		return m, m.tickCmd()

	case refreshMsg:
		first := m.refreshes == 0
		m.refresh()
		if first {
			return m, m.tickCmd()
		}

	case configChangedMsg:
		m.applyReload()
		return m, m.waitForConfigCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refresh runs one refresh cycle synchronously and records what changed.
func (m *Model) refresh() {
	prevErr := m.state.ErrMessage()

	m.state.Refresh(m.ctx)
	m.refreshes++

	m.recordEvents(prevErr)
	m.syncInfo()
}

func (m *Model) recordEvents(prevErr string) {
	errMsg := m.state.ErrMessage()
	if errMsg != "" {
		m.failStreak++
		switch {
		case m.failStreak == criticalAfter:
			m.push(LevelCritical, fmt.Sprintf("socket enumeration failed %d times in a row", m.failStreak))
		case errMsg != prevErr:
			m.push(LevelError, errMsg)
		}
		return
	}

	tcp, udp := m.state.TCPCount(), m.state.UDPCount()
	switch {
	case m.refreshes == 1:
		m.push(LevelInfo, fmt.Sprintf("found %d TCP and %d UDP sockets", tcp, udp))
	case prevErr != "":
		m.push(LevelInfo, fmt.Sprintf("socket enumeration recovered after %d failed refreshes", m.failStreak))
	default:
		m.pushCountChange("TCP", m.lastTCP, tcp)
		m.pushCountChange("UDP", m.lastUDP, udp)
	}

	m.failStreak = 0
	m.lastTCP, m.lastUDP = tcp, udp
	m.tcpTrend.add(tcp)
	m.udpTrend.add(udp)
}

// applyReload picks up a new refresh interval from the config file. The
// pending tick still fires on the old schedule; later ones use the new one.
func (m *Model) applyReload() {
	interval, err := m.reload()
	if err != nil {
		m.push(LevelWarning, "config reload failed: "+errors.Message(err))
		m.logger.Warn("config reload failed", "err", err)
		return
	}
	if interval <= 0 || interval == m.interval {
		return
	}
	m.push(LevelInfo, fmt.Sprintf("refresh interval changed: %s -> %s", m.interval, interval))
	m.interval = interval
}

func (m *Model) pushCountChange(proto string, before, after int) {
	switch {
	case before == after:
		return
	case after == 0:
		m.push(LevelWarning, fmt.Sprintf("no %s sockets left (was %d)", proto, before))
	default:
		m.push(LevelInfo, fmt.Sprintf("%s sockets: %d -> %d", proto, before, after))
	}
}

func (m *Model) push(level Level, message string) {
	m.events.Push(Event{At: m.now(), Level: level, Message: message})
	m.logger.Debug("event", "level", level, "message", message)
}

// syncInfo refreshes the socket info panel. The scroll position is kept
// while the same socket stays selected.
func (m *Model) syncInfo() {
	focus := m.state.Focus()
	cursor := -1
	switch focus {
	case dashboard.FocusTCP:
		cursor = m.state.TCPCursor()
	case dashboard.FocusUDP:
		cursor = m.state.UDPCursor()
	}

	content := m.state.SelectedSocketInfo(m.ctx)
	if content == m.infoContent && focus == m.infoFocus && cursor == m.infoCursor {
		return
	}

	moved := focus != m.infoFocus || cursor != m.infoCursor
	m.infoFocus, m.infoCursor, m.infoContent = focus, cursor, content
	m.info.SetContent(content)
	if moved {
		m.info.GotoTop()
	}
}

// layout holds the row budget of each dashboard section.
type layout struct {
	listRows   int
	infoRows   int
	eventRows  int
	panelWidth int
}

// Section heights, excluding borders: header and footer take one row each,
// the status line one more.
func (m Model) layout() layout {
	const chrome = 1 + 1 + 1 + 3*2
	avail := max(m.height-chrome, 6)

	events := max(avail/5, 2)
	lists := max(avail*2/5, 2)
	info := max(avail-events-lists, 2)

	return layout{
		listRows:   lists,
		infoRows:   info,
		eventRows:  events,
		panelWidth: max(m.width-2, 20),
	}
}

func (m *Model) resize() {
	l := m.layout()
	m.info.Width = l.panelWidth
	m.info.Height = l.infoRows
	m.help.Width = m.width
	m.state.SetWrapWidth(l.panelWidth)
	m.infoContent = ""
	m.syncInfo()
}

// State exposes the underlying dashboard state.
func (m Model) State() *dashboard.State { return m.state }

// Events exposes the event log.
func (m Model) Events() *EventLog { return m.events }

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool { return m.quitting }

// Run starts the dashboard on the alternate screen and blocks until it quits.
func Run(ctx context.Context, state *dashboard.State, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, state, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
