package sockets

import (
	"context"
	"fmt"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// Enumerator lists the sockets of the requested families and protocols.
// Implementations may block; the caller owns cancellation through ctx.
type Enumerator interface {
	Enumerate(ctx context.Context, families []Family, protos []Protocol) ([]Record, error)
}

// connectionsFunc matches psnet.ConnectionsWithContext.
type connectionsFunc func(ctx context.Context, kind string) ([]psnet.ConnectionStat, error)

// GopsutilEnumerator reads the host socket tables through gopsutil.
type GopsutilEnumerator struct {
	connections connectionsFunc
}

// NewGopsutilEnumerator returns an Enumerator backed by gopsutil.
func NewGopsutilEnumerator() *GopsutilEnumerator {
	return &GopsutilEnumerator{connections: psnet.ConnectionsWithContext}
}

// Enumerate queries one gopsutil connection kind per (protocol, family) pair,
// in protocol-major order, and coalesces the rows into one Record per socket.
//
// gopsutil reports a socket once per owning process, so rows that differ only
// in their pid are merged into a single record with a pid set. A pid of 0
// means the owner could not be resolved and is left out of the set.
func (g *GopsutilEnumerator) Enumerate(ctx context.Context, families []Family, protos []Protocol) ([]Record, error) {
	var out []Record
	index := make(map[socketKey]int)

	for _, proto := range protos {
		for _, family := range families {
			kind, err := connectionKind(proto, family)
			if err != nil {
				return nil, err
			}

			rows, err := g.connections(ctx, kind)
			if err != nil {
				return nil, fmt.Errorf("read %s sockets: %w", kind, err)
			}

			for _, row := range rows {
				key := keyFor(proto, family, row)
				if i, ok := index[key]; ok {
					out[i].PIDs = addPID(out[i].PIDs, row.Pid)
					continue
				}
				index[key] = len(out)
				out = append(out, recordFor(proto, family, row))
			}
		}
	}

	return out, nil
}

// Kind returns the short socket kind name, e.g. "tcp4" or "udp6", or
// "unknown" for values outside the known protocols and families.
func Kind(proto Protocol, family Family) string {
	kind, err := connectionKind(proto, family)
	if err != nil {
		return "unknown"
	}
	return kind
}

func connectionKind(proto Protocol, family Family) (string, error) {
	var base string
	switch proto {
	case ProtoTCP:
		base = "tcp"
	case ProtoUDP:
		base = "udp"
	default:
		return "", fmt.Errorf("unsupported protocol %d", int(proto))
	}

	switch family {
	case FamilyIPv4:
		return base + "4", nil
	case FamilyIPv6:
		return base + "6", nil
	default:
		return "", fmt.Errorf("unsupported address family %d", int(family))
	}
}

type socketKey struct {
	proto  Protocol
	family Family
	laddr  psnet.Addr
	raddr  psnet.Addr
	status string
}

func keyFor(proto Protocol, family Family, row psnet.ConnectionStat) socketKey {
	key := socketKey{proto: proto, family: family, laddr: row.Laddr}
	if proto == ProtoTCP {
		key.raddr = row.Raddr
		key.status = row.Status
	}
	return key
}

func recordFor(proto Protocol, family Family, row psnet.ConnectionStat) Record {
	pids := addPID(nil, row.Pid)
	if proto == ProtoUDP {
		return NewUDP(family, UDPRecord{
			LocalAddr: row.Laddr.IP,
			LocalPort: row.Laddr.Port,
		}, pids...)
	}
	return NewTCP(family, TCPRecord{
		LocalAddr:  row.Laddr.IP,
		LocalPort:  row.Laddr.Port,
		RemoteAddr: remoteAddr(row.Raddr.IP, family),
		RemotePort: row.Raddr.Port,
		State:      row.Status,
	}, pids...)
}

// remoteAddr fills in the wildcard address for unconnected sockets, which
// gopsutil reports with an empty remote IP.
func remoteAddr(ip string, family Family) string {
	if ip != "" {
		return ip
	}
	if family == FamilyIPv6 {
		return "::"
	}
	return "0.0.0.0"
}

func addPID(pids []int32, pid int32) []int32 {
	if pid <= 0 {
		return pids
	}
	for _, p := range pids {
		if p == pid {
			return pids
		}
	}
	return append(pids, pid)
}
