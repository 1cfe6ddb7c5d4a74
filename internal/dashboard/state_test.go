package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/sockwatch/internal/errors"
	"github.com/rileyhilliard/sockwatch/internal/logger"
	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
)

func newState(enum *fakeEnumerator, opts ...Option) (*State, *fakeInspector) {
	insp := &fakeInspector{procs: map[int32]procinfo.ProcessInfo{}}
	return New(enum, insp, opts...), insp
}

func TestNew_Empty(t *testing.T) {
	s, _ := newState(enumerating(nil))

	assert.Equal(t, FocusNone, s.Focus())
	assert.Empty(t, s.TCPLines())
	assert.Empty(t, s.UDPLines())
	assert.Zero(t, s.TCPCount())
	assert.Zero(t, s.UDPCount())
	assert.Equal(t, -1, s.TCPCursor())
	assert.Equal(t, -1, s.UDPCursor())
	assert.False(t, s.ShouldQuit())
	assert.NoError(t, s.Err())
}

func TestNew_WithFocus(t *testing.T) {
	s, _ := newState(enumerating(nil), WithFocus(FocusUDP))
	assert.Equal(t, FocusUDP, s.Focus())
}

func TestRefresh_EndToEnd(t *testing.T) {
	enum := enumerating(scenario())
	s, insp := newState(enum)

	s.Refresh(context.Background())

	assert.Equal(t, sockets.AllFamilies, enum.families)
	assert.Equal(t, sockets.AllProtocols, enum.protos)
	assert.Equal(t, 1, insp.refreshes)

	require.NoError(t, s.Err())
	assert.Equal(t, 2, s.TCPCount())
	assert.Equal(t, 1, s.UDPCount())
	assert.Equal(t, []string{
		"local[127.0.0.1:80] -> remote[0.0.0.0:0]; pids[1]; state: LISTEN",
		"local[10.0.0.1:443] -> remote[203.0.113.5:55000]; pids[2, 3]; state: ESTABLISHED",
	}, s.TCPLines())
	assert.Equal(t, []string{"local[0.0.0.0:53] -> *:*; pids[]"}, s.UDPLines())
	assert.Len(t, s.Snapshot().TCP, 2)
}

func TestRefresh_StampsTime(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s, _ := newState(enumerating(scenario()), WithClock(func() time.Time { return at }))

	s.Refresh(context.Background())

	assert.Equal(t, at, s.RefreshedAt())
	assert.Equal(t, at, s.Snapshot().TakenAt)
}

func TestRefresh_DegradesOnFailure(t *testing.T) {
	enum := &fakeEnumerator{
		results: [][]sockets.Record{scenario(), nil},
		errs:    []error{nil, errDenied},
	}
	s, _ := newState(enum)
	ctx := context.Background()

	s.Refresh(ctx)
	s.OnRight()
	s.OnDown()
	s.OnDown()
	require.Equal(t, 1, s.TCPCursor())

	s.Refresh(ctx)

	require.Error(t, s.Err())
	assert.True(t, errors.IsCode(s.Err(), errors.ErrEnumerate))
	assert.Equal(t, "fail to get sockets info: permission denied", s.ErrMessage())
	assert.Empty(t, s.TCPLines())
	assert.Empty(t, s.UDPLines())
	assert.Zero(t, s.TCPCount())
	assert.Zero(t, s.UDPCount())
	assert.Nil(t, s.Snapshot())

	assert.Equal(t, 1, s.TCPCursor(), "cursor survives a failed refresh")
	assert.Equal(t, FocusTCP, s.Focus())
}

func TestRefresh_RecoversAfterFailure(t *testing.T) {
	enum := &fakeEnumerator{
		results: [][]sockets.Record{nil, scenario()},
		errs:    []error{errDenied, nil},
	}
	s, _ := newState(enum)

	s.Refresh(context.Background())
	require.Error(t, s.Err())

	s.Refresh(context.Background())
	assert.NoError(t, s.Err())
	assert.Empty(t, s.ErrMessage())
	assert.Equal(t, 2, s.TCPCount())
}

func TestRefresh_InspectorFailureIsTolerated(t *testing.T) {
	s, insp := newState(enumerating(scenario()))
	insp.refreshErr = errDenied

	s.Refresh(context.Background())

	assert.NoError(t, s.Err())
	assert.Equal(t, 2, s.TCPCount())
}

func TestRefresh_ClampsShrinkingList(t *testing.T) {
	s, _ := newState(enumerating(threeTCP(), threeTCP()[:1]))
	ctx := context.Background()

	s.Refresh(ctx)
	s.OnRight()
	s.OnUp() // unset -> 0
	s.OnUp() // wrap -> 2
	require.Equal(t, 2, s.TCPCursor())

	s.Refresh(ctx)

	assert.Equal(t, 0, s.TCPCursor())
	idx, ok := s.SelectedTCP()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestRefresh_KeepsCursorWhenListEmpties(t *testing.T) {
	s, _ := newState(enumerating(threeTCP(), nil))
	ctx := context.Background()

	s.Refresh(ctx)
	s.OnRight()
	s.OnDown()
	s.OnDown()
	require.Equal(t, 1, s.TCPCursor())

	s.Refresh(ctx)

	assert.Equal(t, 1, s.TCPCursor())
	_, ok := s.SelectedTCP()
	assert.False(t, ok)
	assert.Equal(t, NotAvailableText, s.SelectedSocketInfo(ctx))
}

func TestRefresh_UnsetCursorStaysUnset(t *testing.T) {
	s, _ := newState(enumerating(threeTCP()))

	s.Refresh(context.Background())

	assert.Equal(t, -1, s.TCPCursor())
	assert.Equal(t, -1, s.UDPCursor())
}

func TestStatusLine(t *testing.T) {
	s, _ := newState(enumerating(scenario()))
	s.Refresh(context.Background())
	s.OnRight()

	assert.Equal(t, "TCP count: 2; UDP count: 1; focus: TCP", s.StatusLine())
}

func TestRefresh_LogsOutcome(t *testing.T) {
	l, buf := logger.NewBuffer()
	enum := &fakeEnumerator{
		results: [][]sockets.Record{scenario(), nil},
		errs:    []error{nil, errDenied},
	}
	s, _ := newState(enum, WithLogger(l))

	s.Refresh(context.Background())
	assert.Contains(t, buf.String(), "sockets refreshed")
	assert.Contains(t, buf.String(), "tcp=2")

	s.Refresh(context.Background())
	assert.Contains(t, buf.String(), "socket enumeration failed")
	assert.Contains(t, buf.String(), "permission denied")
}
