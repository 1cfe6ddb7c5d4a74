// Package sockets models one point-in-time enumeration of the host's TCP and
// UDP sockets.
//
// A raw enumeration is an unordered list of Records, each tagged TCP or UDP and
// carrying the ids of the processes that own it. Partition routes the records
// into a Snapshot with one ordered list per protocol, and the Format functions
// turn entries into the fixed one-line form shown by the dashboard:
//
//	local[127.0.0.1:80] -> remote[0.0.0.0:0]; pids[1]; state: LISTEN
//	local[0.0.0.0:53] -> *:*; pids[]
//
// The Enumerator interface is the boundary to the operating system. The
// GopsutilEnumerator implementation reads the socket tables through
// github.com/shirou/gopsutil and coalesces its one-row-per-process output
// into one Record per socket.
package sockets
