package dashboard

import (
	"context"
	"errors"

	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
)

// fakeEnumerator returns its queued results in order, repeating the last one.
type fakeEnumerator struct {
	results  [][]sockets.Record
	errs     []error
	calls    int
	families []sockets.Family
	protos   []sockets.Protocol
}

func (f *fakeEnumerator) Enumerate(_ context.Context, families []sockets.Family, protos []sockets.Protocol) ([]sockets.Record, error) {
	f.families, f.protos = families, protos
	i := min(f.calls, len(f.results)-1)
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	return f.results[i], nil
}

func enumerating(batches ...[]sockets.Record) *fakeEnumerator {
	return &fakeEnumerator{results: batches}
}

type fakeInspector struct {
	procs      map[int32]procinfo.ProcessInfo
	refreshErr error
	refreshes  int
}

func (f *fakeInspector) RefreshAll(context.Context) error {
	f.refreshes++
	return f.refreshErr
}

func (f *fakeInspector) Lookup(_ context.Context, pid int32) (procinfo.ProcessInfo, bool) {
	info, ok := f.procs[pid]
	return info, ok
}

var errDenied = errors.New("permission denied")

func tcpRec(addr string, port uint32, remote string, rport uint32, state string, pids ...int32) sockets.Record {
	return sockets.NewTCP(sockets.FamilyIPv4, sockets.TCPRecord{
		LocalAddr:  addr,
		LocalPort:  port,
		RemoteAddr: remote,
		RemotePort: rport,
		State:      state,
	}, pids...)
}

func udpRec(addr string, port uint32, pids ...int32) sockets.Record {
	return sockets.NewUDP(sockets.FamilyIPv4, sockets.UDPRecord{LocalAddr: addr, LocalPort: port}, pids...)
}

// scenario is the canonical mixed input: two TCP sockets around one UDP socket.
func scenario() []sockets.Record {
	return []sockets.Record{
		tcpRec("127.0.0.1", 80, "0.0.0.0", 0, "LISTEN", 1),
		udpRec("0.0.0.0", 53),
		tcpRec("10.0.0.1", 443, "203.0.113.5", 55000, "ESTABLISHED", 2, 3),
	}
}

func threeTCP() []sockets.Record {
	return []sockets.Record{
		tcpRec("127.0.0.1", 1, "0.0.0.0", 0, "LISTEN"),
		tcpRec("127.0.0.1", 2, "0.0.0.0", 0, "LISTEN"),
		tcpRec("127.0.0.1", 3, "0.0.0.0", 0, "LISTEN"),
	}
}
