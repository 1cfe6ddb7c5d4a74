// Package dashboard holds the state behind the socket dashboard: the latest
// snapshot, the derived display lines, which list has focus and where each
// list's cursor sits.
//
// A State is owned by one goroutine. The event loop calls Refresh on every
// tick and one navigation method per key press; the renderer only reads.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/logger"
	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
)

// Fixed texts returned by SelectedSocketInfo.
const (
	PromptText       = "Use ←/→ to focus the TCP or UDP list, ↑/↓ to pick a socket."
	FailureText      = "Socket information is unavailable: the last refresh failed."
	NotAvailableText = "Socket is not available anymore."
	NoOwnerText      = "No owning process (not visible with current privileges)."
)

const noCursor = -1

// State is the dashboard model.
type State struct {
	enumerator sockets.Enumerator
	inspector  procinfo.Inspector
	logger     *log.Logger
	now        func() time.Time
	wrapWidth  int

	snapshot *sockets.Snapshot
	err      error
	tcpLines []string
	udpLines []string
	tcpCount int
	udpCount int

	focus     Focus
	tcpCursor int
	udpCursor int
	quit      bool

	refreshedAt time.Time
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used for refresh outcomes.
func WithLogger(l *log.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFocus sets the focus the dashboard starts with.
func WithFocus(f Focus) Option {
	return func(s *State) { s.focus = f }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *State) { s.now = now }
}

// New returns a State with an empty snapshot and both cursors unset.
// Nothing is enumerated until the first Refresh.
func New(enumerator sockets.Enumerator, inspector procinfo.Inspector, opts ...Option) *State {
	s := &State{
		enumerator: enumerator,
		inspector:  inspector,
		logger:     logger.Noop(),
		now:        time.Now,
		snapshot:   &sockets.Snapshot{},
		tcpLines:   []string{},
		udpLines:   []string{},
		tcpCursor:  noCursor,
		udpCursor:  noCursor,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh enumerates the sockets again and replaces the snapshot, display
// lines and counts together.
//
// A failed enumeration is stored, not returned: the lines empty out, the
// counts drop to zero and the cursors keep their values for the next good
// refresh. After a good refresh each cursor is clamped into its list unless
// that list is empty.
func (s *State) Refresh(ctx context.Context) {
	if err := s.inspector.RefreshAll(ctx); err != nil {
		s.logger.Warn("process list refresh failed", "err", err)
	}

	raw, err := s.enumerator.Enumerate(ctx, sockets.AllFamilies, sockets.AllProtocols)
	s.refreshedAt = s.now()
	if err != nil {
		s.err = errors.NewEnumerationFailed(err)
		s.snapshot = nil
		s.tcpLines = []string{}
		s.udpLines = []string{}
		s.tcpCount = 0
		s.udpCount = 0
		s.logger.Error("socket enumeration failed", "err", err)
		return
	}

	snap := sockets.Partition(raw)
	snap.TakenAt = s.refreshedAt
	tcpLines, udpLines := sockets.Lines(snap)

	s.err = nil
	s.snapshot = snap
	s.tcpLines = tcpLines
	s.udpLines = udpLines
	s.tcpCount = len(snap.TCP)
	s.udpCount = len(snap.UDP)

	s.tcpCursor = clamp(s.tcpCursor, s.tcpCount)
	s.udpCursor = clamp(s.udpCursor, s.udpCount)

	s.logger.Debug("sockets refreshed", "tcp", s.tcpCount, "udp", s.udpCount)
}

func clamp(cursor, count int) int {
	if cursor == noCursor || count == 0 {
		return cursor
	}
	if cursor >= count {
		return count - 1
	}
	return cursor
}

// OnKey dispatches an abstract key press. KeyQuit only raises ShouldQuit.
func (s *State) OnKey(k Key) {
	switch k {
	case KeyQuit:
		s.quit = true
	case KeyUp:
		s.OnUp()
	case KeyDown:
		s.OnDown()
	case KeyLeft:
		s.OnLeft()
	case KeyRight:
		s.OnRight()
	}
}

// OnRight moves focus towards UDP.
func (s *State) OnRight() { s.focus = s.focus.Right() }

// OnLeft moves focus towards None.
func (s *State) OnLeft() { s.focus = s.focus.Left() }

// OnUp moves the focused cursor up, wrapping from the first row to the last.
// An unset cursor lands on the first row. Nothing happens without focus or
// when the focused list is empty.
func (s *State) OnUp() {
	cursor, count := s.focusedCursor()
	if cursor == nil || count == 0 {
		return
	}
	switch {
	case *cursor == noCursor:
		*cursor = 0
	case *cursor > 0:
		*cursor--
	default:
		*cursor = count - 1
	}
}

// OnDown moves the focused cursor down, wrapping from the last row to the
// first. An unset cursor lands on the first row.
func (s *State) OnDown() {
	cursor, count := s.focusedCursor()
	if cursor == nil || count == 0 {
		return
	}
	switch {
	case *cursor == noCursor:
		*cursor = 0
	case *cursor >= count-1:
		*cursor = 0
	default:
		*cursor++
	}
}

func (s *State) focusedCursor() (*int, int) {
	switch s.focus {
	case FocusTCP:
		return &s.tcpCursor, s.tcpCount
	case FocusUDP:
		return &s.udpCursor, s.udpCount
	default:
		return nil, 0
	}
}

// SelectedTCP returns the highlighted TCP row. ok is false unless TCP has
// focus and its cursor points into the current list.
func (s *State) SelectedTCP() (int, bool) {
	return selected(s.focus == FocusTCP, s.tcpCursor, s.tcpCount)
}

// SelectedUDP is SelectedTCP for the UDP list.
func (s *State) SelectedUDP() (int, bool) {
	return selected(s.focus == FocusUDP, s.udpCursor, s.udpCount)
}

func selected(focused bool, cursor, count int) (int, bool) {
	if !focused || cursor < 0 || cursor >= count {
		return 0, false
	}
	return cursor, true
}

// SelectedSocketInfo describes the processes owning the socket under the
// focused cursor. It never fails: missing data turns into placeholder text.
func (s *State) SelectedSocketInfo(ctx context.Context) string {
	if s.focus == FocusNone {
		return PromptText
	}
	if s.err != nil {
		return FailureText
	}

	var pids []int32
	switch s.focus {
	case FocusTCP:
		i := max(s.tcpCursor, 0)
		if i >= len(s.snapshot.TCP) {
			return NotAvailableText
		}
		pids = s.snapshot.TCP[i].PIDs
	case FocusUDP:
		i := max(s.udpCursor, 0)
		if i >= len(s.snapshot.UDP) {
			return NotAvailableText
		}
		pids = s.snapshot.UDP[i].PIDs
	}

	if len(pids) == 0 {
		return NoOwnerText
	}

	now := s.now()
	blocks := make([]string, 0, len(pids))
	for _, pid := range pids {
		info, ok := s.inspector.Lookup(ctx, pid)
		if !ok {
			s.logger.Debug("process lookup failed", "pid", pid)
			blocks = append(blocks, procinfo.NotFound(pid))
			continue
		}
		blocks = append(blocks, procinfo.FormatBlock(info, now, s.wrapWidth))
	}
	return strings.Join(blocks, "\n\n")
}

// SetWrapWidth sets the width process details are wrapped to. Zero disables
// wrapping.
func (s *State) SetWrapWidth(w int) { s.wrapWidth = max(w, 0) }

// ShouldQuit reports whether the quit key has been pressed.
func (s *State) ShouldQuit() bool { return s.quit }

// Focus returns the focused list.
func (s *State) Focus() Focus { return s.focus }

// TCPLines returns one display line per TCP socket.
func (s *State) TCPLines() []string { return s.tcpLines }

// UDPLines returns one display line per UDP socket.
func (s *State) UDPLines() []string { return s.udpLines }

// TCPCount returns the number of TCP sockets in the last good snapshot,
// or 0 after a failed refresh.
func (s *State) TCPCount() int { return s.tcpCount }

// UDPCount returns the number of UDP sockets, like TCPCount.
func (s *State) UDPCount() int { return s.udpCount }

// TCPCursor returns the raw TCP cursor, -1 when unset.
func (s *State) TCPCursor() int { return s.tcpCursor }

// UDPCursor returns the raw UDP cursor, -1 when unset.
func (s *State) UDPCursor() int { return s.udpCursor }

// Snapshot returns the last good snapshot, or nil after a failed refresh.
func (s *State) Snapshot() *sockets.Snapshot { return s.snapshot }

// Err returns the enumeration error of the last refresh, if any.
func (s *State) Err() error { return s.err }

// ErrMessage returns the one-line form of Err, or "".
func (s *State) ErrMessage() string { return errors.Message(s.err) }

// RefreshedAt returns when the last refresh finished.
func (s *State) RefreshedAt() time.Time { return s.refreshedAt }

// StatusLine summarizes counts and focus in one line.
func (s *State) StatusLine() string {
	return fmt.Sprintf("TCP count: %d; UDP count: %d; focus: %s", s.tcpCount, s.udpCount, s.focus)
}
