package monitor

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/sockwatch/internal/dashboard"
	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
)

// scriptedEnumerator replays one step per call and repeats the last step.
type scriptedEnumerator struct {
	steps []step
	calls int
}

type step struct {
	records []sockets.Record
	err     error
}

func (s *scriptedEnumerator) Enumerate(context.Context, []sockets.Family, []sockets.Protocol) ([]sockets.Record, error) {
	st := s.steps[min(s.calls, len(s.steps)-1)]
	s.calls++
	return st.records, st.err
}

type mapInspector map[int32]procinfo.ProcessInfo

func (mapInspector) RefreshAll(context.Context) error { return nil }

func (m mapInspector) Lookup(_ context.Context, pid int32) (procinfo.ProcessInfo, bool) {
	info, ok := m[pid]
	return info, ok
}

var errDenied = errors.New("permission denied")

func sampleRecords() []sockets.Record {
	return []sockets.Record{
		sockets.NewTCP(sockets.FamilyIPv4, sockets.TCPRecord{
			LocalAddr: "127.0.0.1", LocalPort: 80, RemoteAddr: "0.0.0.0", State: "LISTEN",
		}, 1),
		sockets.NewUDP(sockets.FamilyIPv4, sockets.UDPRecord{LocalAddr: "0.0.0.0", LocalPort: 53}),
		sockets.NewTCP(sockets.FamilyIPv4, sockets.TCPRecord{
			LocalAddr: "10.0.0.1", LocalPort: 443, RemoteAddr: "203.0.113.5", RemotePort: 55000, State: "ESTABLISHED",
		}, 2, 3),
	}
}

func newTestModel(t *testing.T, steps ...step) Model {
	t.Helper()
	if len(steps) == 0 {
		steps = []step{{records: sampleRecords()}}
	}
	state := dashboard.New(&scriptedEnumerator{steps: steps}, mapInspector{
		1: {PID: 1, Name: "init"},
	})
	return NewModel(context.Background(), state, Options{EventsSize: 10})
}

// send runs msg through Update and returns the new model and command.
func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keyPress(k string) tea.KeyMsg {
	switch k {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}
