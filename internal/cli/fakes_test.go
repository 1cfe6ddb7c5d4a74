package cli

import (
	"context"
	"errors"

	"github.com/rileyhilliard/sockwatch/internal/procinfo"
	"github.com/rileyhilliard/sockwatch/internal/sockets"
)

type stubEnumerator struct {
	records []sockets.Record
	err     error
	protos  []sockets.Protocol
}

func (s *stubEnumerator) Enumerate(_ context.Context, _ []sockets.Family, protos []sockets.Protocol) ([]sockets.Record, error) {
	s.protos = protos
	if s.err != nil {
		return nil, s.err
	}
	var out []sockets.Record
	for _, r := range s.records {
		for _, p := range protos {
			if r.Proto == p {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

type stubInspector struct {
	names map[int32]string
}

func (s *stubInspector) RefreshAll(context.Context) error {
	return errors.New("process table unavailable")
}

func (s *stubInspector) Lookup(_ context.Context, pid int32) (procinfo.ProcessInfo, bool) {
	name, ok := s.names[pid]
	return procinfo.ProcessInfo{PID: pid, Name: name}, ok
}

func sampleSockets() *stubEnumerator {
	return &stubEnumerator{records: []sockets.Record{
		sockets.NewUDP(sockets.FamilyIPv6, sockets.UDPRecord{LocalAddr: "::", LocalPort: 5353}, 300),
		sockets.NewTCP(sockets.FamilyIPv4, sockets.TCPRecord{
			LocalAddr: "0.0.0.0", LocalPort: 22, RemoteAddr: "0.0.0.0", State: "LISTEN",
		}, 100),
		sockets.NewTCP(sockets.FamilyIPv4, sockets.TCPRecord{
			LocalAddr: "10.0.0.5", LocalPort: 51000, RemoteAddr: "140.82.112.3", RemotePort: 443, State: "ESTABLISHED",
		}, 200, 201),
		sockets.NewUDP(sockets.FamilyIPv4, sockets.UDPRecord{LocalAddr: "0.0.0.0", LocalPort: 68}),
	}}
}

func sampleNames() *stubInspector {
	return &stubInspector{names: map[int32]string{100: "sshd", 200: "curl", 300: "avahi-daemon"}}
}
