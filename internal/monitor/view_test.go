package monitor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func wideModel(t *testing.T, steps ...step) Model {
	t.Helper()
	m := newTestModel(t, steps...)
	m, _ = send(m, tea.WindowSizeMsg{Width: 240, Height: 40})
	return m
}

func TestView_BeforeFirstRefresh(t *testing.T) {
	m := wideModel(t)

	view := m.View()

	assert.Contains(t, view, "sockwatch")
	assert.Contains(t, view, "waiting for first refresh")
	assert.Contains(t, view, "no sockets")
	assert.Contains(t, view, "no events yet")
}

func TestView_Lists(t *testing.T) {
	m := wideModel(t)
	m, _ = send(m, refreshMsg{})

	view := m.View()

	assert.Contains(t, view, "TCP (2)")
	assert.Contains(t, view, "UDP (1)")
	assert.Contains(t, view, "local[127.0.0.1:80] -> remote[0.0.0.0:0]; pids[1]; state: LISTEN")
	assert.Contains(t, view, "local[0.0.0.0:53] -> *:*; pids[]")
	assert.Contains(t, view, "TCP count: 2; UDP count: 1; focus: None")
	assert.Contains(t, view, "Socket info")
	assert.Contains(t, view, "INFO: found 2 TCP and 1 UDP sockets")
	assert.Contains(t, view, "updated")
}

func TestView_SelectionMarker(t *testing.T) {
	m := wideModel(t)
	m, _ = send(m, refreshMsg{})
	assert.NotContains(t, m.View(), SelectionMarker+" local[")

	m, _ = send(m, keyPress("right"))
	m, _ = send(m, keyPress("down"))

	assert.Contains(t, m.View(), SelectionMarker+" local[127.0.0.1:80]")
	assert.Contains(t, m.View(), "focus: TCP")
}

func TestView_EnumerationFailure(t *testing.T) {
	m := wideModel(t, step{err: errDenied})
	m, _ = send(m, refreshMsg{})

	view := m.View()

	assert.Contains(t, view, "fail to get sockets info: permission denied")
	assert.Contains(t, view, "TCP count: 0; UDP count: 0")
	assert.Contains(t, view, "ERROR: fail to get sockets info")
}

func TestRenderList_ScrollsToSelection(t *testing.T) {
	m := wideModel(t)
	lines := []string{"a0", "a1", "a2", "a3", "a4", "a5"}

	out := m.renderList(listPanel{title: "TCP", lines: lines, selected: 5, hasSel: true, style: TCPSelectedStyle}, 40, 3)

	assert.Contains(t, out, SelectionMarker+" a5")
	assert.Contains(t, out, "a3")
	assert.NotContains(t, out, "a2")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "", truncate("abc", 0))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "abc", truncate("abc", 10))
}

func TestView_CountTrend(t *testing.T) {
	m := wideModel(t, step{records: sampleRecords()}, step{records: sampleRecords()[:1]})
	m, _ = send(m, refreshMsg{})
	m, _ = send(m, refreshMsg{})

	view := m.View()

	assert.Contains(t, view, "TCP (1) █▁")
	assert.Contains(t, view, "UDP (0) █▁")
}
