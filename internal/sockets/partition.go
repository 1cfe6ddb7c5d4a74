package sockets

import "slices"

// Partition splits a raw enumeration into per-protocol lists in a single pass.
//
// Records keep their relative order within each list. Nothing is sorted or
// deduplicated: duplicates from the source are kept as they are. Both lists
// are allocated for the worst case and clipped to their final length.
func Partition(raw []Record) *Snapshot {
	tcp := make([]TCPEntry, 0, len(raw))
	udp := make([]UDPEntry, 0, len(raw))

	for _, r := range raw {
		switch r.Proto {
		case ProtoTCP:
			var rec TCPRecord
			if r.TCP != nil {
				rec = *r.TCP
			}
			tcp = append(tcp, TCPEntry{TCPRecord: rec, Family: r.Family, PIDs: r.PIDs})
		case ProtoUDP:
			var rec UDPRecord
			if r.UDP != nil {
				rec = *r.UDP
			}
			udp = append(udp, UDPEntry{UDPRecord: rec, Family: r.Family, PIDs: r.PIDs})
		}
	}

	return &Snapshot{
		TCP: slices.Clip(tcp),
		UDP: slices.Clip(udp),
	}
}
