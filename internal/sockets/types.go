package sockets

import "time"

// Protocol identifies the transport of a socket.
type Protocol int

const (
	ProtoTCP Protocol = iota
	ProtoUDP
)

// String returns the upper-case protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtoTCP:
		return "TCP"
	case ProtoUDP:
		return "UDP"
	default:
		return "unknown"
	}
}

// Family identifies the address family of a socket.
type Family int

const (
	FamilyIPv4 Family = iota
	FamilyIPv6
)

// String returns a human-readable label for the family.
func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	default:
		return "unknown"
	}
}

// AllFamilies and AllProtocols are what the dashboard asks for on every refresh.
var (
	AllFamilies  = []Family{FamilyIPv4, FamilyIPv6}
	AllProtocols = []Protocol{ProtoTCP, ProtoUDP}
)

// TCPRecord holds the endpoints and connection state of a TCP socket.
type TCPRecord struct {
	LocalAddr  string
	LocalPort  uint32
	RemoteAddr string
	RemotePort uint32
	State      string
}

// UDPRecord holds the local endpoint of a UDP socket.
type UDPRecord struct {
	LocalAddr string
	LocalPort uint32
}

// Record is one raw socket from the enumeration. Exactly one of TCP and UDP
// is set, matching Proto. Use NewTCP and NewUDP to build one.
type Record struct {
	Proto  Protocol
	Family Family
	TCP    *TCPRecord
	UDP    *UDPRecord

	// PIDs of the owning processes. Empty when ownership could not be
	// resolved, for example without the privilege to inspect other users.
	PIDs []int32
}

// NewTCP builds a TCP record.
func NewTCP(family Family, rec TCPRecord, pids ...int32) Record {
	return Record{Proto: ProtoTCP, Family: family, TCP: &rec, PIDs: pids}
}

// NewUDP builds a UDP record.
func NewUDP(family Family, rec UDPRecord, pids ...int32) Record {
	return Record{Proto: ProtoUDP, Family: family, UDP: &rec, PIDs: pids}
}

// TCPEntry is a TCP socket in a Snapshot together with its owners.
type TCPEntry struct {
	TCPRecord
	Family Family
	PIDs   []int32
}

// UDPEntry is a UDP socket in a Snapshot together with its owners.
type UDPEntry struct {
	UDPRecord
	Family Family
	PIDs   []int32
}

// Snapshot is one refresh cycle's view of the sockets, split by protocol.
// It is not modified after Partition returns it.
type Snapshot struct {
	TCP []TCPEntry
	UDP []UDPEntry

	// TakenAt is stamped by the caller. Partition leaves it zero.
	TakenAt time.Time
}

// Len returns the total number of entries across both protocols.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.TCP) + len(s.UDP)
}
