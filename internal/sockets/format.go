package sockets

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTCP renders a TCP entry as a single dashboard line.
func FormatTCP(e TCPEntry) string {
	return fmt.Sprintf("local[%s:%d] -> remote[%s:%d]; pids[%s]; state: %s",
		e.LocalAddr, e.LocalPort, e.RemoteAddr, e.RemotePort, FormatPIDs(e.PIDs), e.State)
}

// FormatUDP renders a UDP entry as a single dashboard line. UDP has no peer,
// so the remote side is always "*:*".
func FormatUDP(e UDPEntry) string {
	return fmt.Sprintf("local[%s:%d] -> *:*; pids[%s]", e.LocalAddr, e.LocalPort, FormatPIDs(e.PIDs))
}

// FormatPIDs joins pids with ", ". An empty set renders as "".
func FormatPIDs(pids []int32) string {
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = strconv.FormatInt(int64(pid), 10)
	}
	return strings.Join(parts, ", ")
}

// Lines formats every entry of a snapshot. The results are one-to-one with
// s.TCP and s.UDP. A nil snapshot yields two empty slices.
func Lines(s *Snapshot) (tcp, udp []string) {
	if s == nil {
		return []string{}, []string{}
	}
	tcp = make([]string, len(s.TCP))
	for i, e := range s.TCP {
		tcp[i] = FormatTCP(e)
	}
	udp = make([]string, len(s.UDP))
	for i, e := range s.UDP {
		udp[i] = FormatUDP(e)
	}
	return tcp, udp
}
