package procinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// GopsutilInspector implements Inspector on top of gopsutil's process package.
// It is not safe for concurrent use.
type GopsutilInspector struct {
	listPIDs func(ctx context.Context) ([]int32, error)
	load     func(ctx context.Context, pid int32) (ProcessInfo, error)

	live  map[int32]struct{}
	cache map[int32]ProcessInfo
	miss  map[int32]struct{}
}

// NewGopsutilInspector returns an inspector reading the local process table.
func NewGopsutilInspector() *GopsutilInspector {
	return &GopsutilInspector{
		listPIDs: process.PidsWithContext,
		load:     loadProcess,
		cache:    make(map[int32]ProcessInfo),
		miss:     make(map[int32]struct{}),
	}
}

// RefreshAll drops every cached lookup and re-reads the set of live pids.
// When the pid list cannot be read, lookups fall back to probing each pid
// directly and the error is returned for the caller to log.
func (g *GopsutilInspector) RefreshAll(ctx context.Context) error {
	clear(g.cache)
	clear(g.miss)

	pids, err := g.listPIDs(ctx)
	if err != nil {
		g.live = nil
		return fmt.Errorf("list processes: %w", err)
	}

	g.live = make(map[int32]struct{}, len(pids))
	for _, pid := range pids {
		g.live[pid] = struct{}{}
	}
	return nil
}

// Lookup returns the process with the given pid. The second result is false
// when the process does not exist or cannot be opened.
func (g *GopsutilInspector) Lookup(ctx context.Context, pid int32) (ProcessInfo, bool) {
	if info, ok := g.cache[pid]; ok {
		return info, true
	}
	if _, ok := g.miss[pid]; ok {
		return ProcessInfo{}, false
	}
	if g.live != nil {
		if _, ok := g.live[pid]; !ok {
			g.miss[pid] = struct{}{}
			return ProcessInfo{}, false
		}
	}

	info, err := g.load(ctx, pid)
	if err != nil {
		g.miss[pid] = struct{}{}
		return ProcessInfo{}, false
	}
	g.cache[pid] = info
	return info, true
}

// loadProcess reads every field it can. Only failing to open the process is
// an error; unreadable fields (typically permission denied on another user's
// process) stay empty.
func loadProcess(ctx context.Context, pid int32) (ProcessInfo, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return ProcessInfo{}, err
	}

	info := ProcessInfo{PID: pid}
	info.Name, _ = p.NameWithContext(ctx)
	if status, err := p.StatusWithContext(ctx); err == nil {
		info.Status = strings.Join(status, ",")
	}
	info.Cmdline, _ = p.CmdlineWithContext(ctx)
	info.Exe, _ = p.ExeWithContext(ctx)
	info.Environ, _ = p.EnvironWithContext(ctx)
	if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
		info.MemoryRSS = mem.RSS
		info.MemoryVMS = mem.VMS
	}
	if created, err := p.CreateTimeWithContext(ctx); err == nil && created > 0 {
		info.StartTime = time.UnixMilli(created)
	}
	info.CPUPercent, _ = p.CPUPercentWithContext(ctx)

	return info, nil
}
