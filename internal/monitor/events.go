package monitor

import (
	"time"
)

// DefaultEventsSize is the default number of events kept by the event log.
const DefaultEventsSize = 50

// Level is the severity of an event in the event log.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelCritical
)

// String returns the upper-case level label shown in the event panel.
func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// Event is one line in the event log.
type Event struct {
	At      time.Time
	Level   Level
	Message string
}

// EventLog is a fixed-size circular buffer of events. When full, the oldest
// event is overwritten. It is only touched from the Bubble Tea update loop.
type EventLog struct {
	data  []Event
	head  int
	count int
	size  int
}

// NewEventLog creates an event log holding at most size events.
func NewEventLog(size int) *EventLog {
	if size <= 0 {
		size = DefaultEventsSize
	}
	return &EventLog{
		data: make([]Event, size),
		size: size,
	}
}

// Push appends an event.
func (e *EventLog) Push(ev Event) {
	e.data[e.head] = ev
	e.head = (e.head + 1) % e.size
	if e.count < e.size {
		e.count++
	}
}

// Last returns up to count events, newest first.
func (e *EventLog) Last(count int) []Event {
	if count <= 0 || e.count == 0 {
		return nil
	}
	if count > e.count {
		count = e.count
	}

	result := make([]Event, count)
	// head points to the next write position, so the newest event is at head-1.
	for i := 0; i < count; i++ {
		idx := (e.head - 1 - i + e.size) % e.size
		result[i] = e.data[idx]
	}
	return result
}

// Len returns the number of stored events.
func (e *EventLog) Len() int {
	return e.count
}

// Clear removes all events.
func (e *EventLog) Clear() {
	e.head = 0
	e.count = 0
}
