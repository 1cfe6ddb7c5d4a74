// Package procinfo resolves process ids to the details shown next to a
// selected socket.
package procinfo

import (
	"context"
	"time"
)

// ProcessInfo is a point-in-time description of one process.
// Fields the platform would not report are left at their zero value.
type ProcessInfo struct {
	PID        int32
	Name       string
	Status     string
	Cmdline    string
	Exe        string
	Environ    []string
	MemoryRSS  uint64
	MemoryVMS  uint64
	StartTime  time.Time
	CPUPercent float64
}

// Inspector looks up processes by pid.
//
// RefreshAll marks the start of a refresh cycle. Lookups between two calls
// may be served from a cache, so results are accurate per cycle rather than
// per call.
type Inspector interface {
	RefreshAll(ctx context.Context) error
	Lookup(ctx context.Context, pid int32) (ProcessInfo, bool)
}
