package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/rileyhilliard/sockwatch/internal/dashboard"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	l := m.layout()

	sections := []string{
		m.renderHeader(),
		m.renderSocketLists(l),
		FooterStyle.Render(m.state.StatusLine()),
		m.renderInfo(l),
		m.renderEvents(l),
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the title and the age of the last refresh.
func (m Model) renderHeader() string {
	updateText := "waiting for first refresh"
	if at := m.state.RefreshedAt(); !at.IsZero() {
		updateText = "updated " + humanize.RelTime(at, m.now(), "ago", "from now")
	}

	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("sockwatch")

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(fmt.Sprintf(" | every %s | %s", m.interval, updateText))

	return HeaderStyle.Render(title + stats)
}

// renderSocketLists renders the TCP and UDP panels side by side.
func (m Model) renderSocketLists(l layout) string {
	half := max(l.panelWidth/2-1, 10)

	tcpSel, tcpOK := m.state.SelectedTCP()
	udpSel, udpOK := m.state.SelectedUDP()

	tcp := m.renderList(listPanel{
		title:    "TCP",
		lines:    m.state.TCPLines(),
		selected: tcpSel,
		hasSel:   tcpOK,
		focused:  m.state.Focus() == dashboard.FocusTCP,
		style:    TCPSelectedStyle,
		trend:    m.tcpTrend,
	}, half, l.listRows)

	udp := m.renderList(listPanel{
		title:    "UDP",
		lines:    m.state.UDPLines(),
		selected: udpSel,
		hasSel:   udpOK,
		focused:  m.state.Focus() == dashboard.FocusUDP,
		style:    UDPSelectedStyle,
		trend:    m.udpTrend,
	}, half, l.listRows)

	return lipgloss.JoinHorizontal(lipgloss.Top, tcp, udp)
}

type listPanel struct {
	title    string
	lines    []string
	selected int
	hasSel   bool
	focused  bool
	style    lipgloss.Style
	trend    countTrend
}

// renderList renders one socket list, scrolled so the selected row is visible.
// After a failed refresh the panel shows the error instead of rows.
func (m Model) renderList(p listPanel, width, rows int) string {
	inner := width - 2
	var body []string

	switch {
	case m.state.Err() != nil:
		body = append(body, ErrorTextStyle.Width(inner).Render(m.state.ErrMessage()))
	case len(p.lines) == 0:
		body = append(body, LabelStyle.Render("no sockets"))
	default:
		start := 0
		if p.hasSel && p.selected >= rows {
			start = p.selected - rows + 1
		}
		end := min(start+rows, len(p.lines))
		for i := start; i < end; i++ {
			line := truncate(p.lines[i], inner-2)
			if p.hasSel && i == p.selected {
				body = append(body, p.style.Render(SelectionMarker+" "+line))
				continue
			}
			body = append(body, ValueStyle.Render("  "+line))
		}
	}

	title := panelTitle(p.title, len(p.lines))
	if spark := p.trend.render(inner - lipgloss.Width(title) - 1); spark != "" {
		title += " " + TrendStyle.Render(spark)
	}
	return m.panel(title, strings.Join(body, "\n"), width, rows, p.focused)
}

func panelTitle(title string, count int) string {
	return fmt.Sprintf("%s (%d)", title, count)
}

// renderInfo renders the scrollable process detail of the selected socket.
func (m Model) renderInfo(l layout) string {
	title := "Socket info"
	if pct := m.info.ScrollPercent(); m.info.TotalLineCount() > m.info.Height {
		title = fmt.Sprintf("%s %3.f%%", title, pct*100)
	}
	return m.panel(title, m.info.View(), l.panelWidth+2, l.infoRows, false)
}

// renderEvents renders the newest events first.
func (m Model) renderEvents(l layout) string {
	events := m.events.Last(l.eventRows)
	lines := make([]string, 0, len(events))
	for _, ev := range events {
		stamp := LabelStyle.Render(ev.At.Format("15:04:05"))
		text := LevelStyle(ev.Level).Render(fmt.Sprintf("%s: %s", ev.Level, ev.Message))
		lines = append(lines, truncate(stamp+" "+text, l.panelWidth))
	}
	if len(lines) == 0 {
		lines = append(lines, LabelStyle.Render("no events yet"))
	}
	return m.panel("Events", strings.Join(lines, "\n"), l.panelWidth+2, l.eventRows, false)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	return FooterStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// panel draws a bordered box of the given outer width and inner height with
// the title on the first row.
func (m Model) panel(title, body string, width, rows int, focused bool) string {
	style := PanelStyle
	if focused {
		style = PanelFocusedStyle
	}
	content := PanelTitleStyle.Render(title) + "\n" + body
	return style.
		Width(max(width-2, 1)).
		Height(rows + 1).
		MaxHeight(rows + 3).
		Render(content)
}

// truncate cuts s to at most width cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}
