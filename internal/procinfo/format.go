package procinfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
)

const unknown = "-"

// NotFound is the placeholder for a pid that could not be resolved.
func NotFound(pid int32) string {
	return fmt.Sprintf("pid %d: process not found", pid)
}

// FormatBlock renders a process as a multi-line block. now anchors the
// relative start time. When width is positive the environment line is
// wrapped to it.
func FormatBlock(info ProcessInfo, now time.Time, width int) string {
	var b strings.Builder

	field := func(label, value string) {
		if value == "" {
			value = unknown
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	field("pid", fmt.Sprintf("%d", info.PID))
	field("name", info.Name)
	field("status", info.Status)
	field("cmd", info.Cmdline)
	field("exe", info.Exe)

	const envLabel = "environment: "
	env := strings.Join(info.Environ, " ")
	if env != "" && width > len(envLabel) {
		env = wordwrap.String(env, width-len(envLabel))
	}
	field("environment", env)

	field("memory", formatBytes(info.MemoryRSS))
	field("virtual memory", formatBytes(info.MemoryVMS))
	field("start time", formatStart(info.StartTime, now))
	field("cpu usage", fmt.Sprintf("%.1f%%", info.CPUPercent))

	return strings.TrimSuffix(b.String(), "\n")
}

func formatBytes(n uint64) string {
	if n == 0 {
		return ""
	}
	return humanize.IBytes(n)
}

func formatStart(start, now time.Time) string {
	if start.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s (%s)", start.Format(time.DateTime), humanize.RelTime(start, now, "ago", "from now"))
}
