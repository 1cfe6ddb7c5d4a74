package dashboard

import (
	"fmt"
	"strings"
)

// Focus is the socket list that receives up/down navigation.
type Focus int

// Focus values are ordered: None < TCP < UDP.
const (
	FocusNone Focus = iota
	FocusTCP
	FocusUDP
)

// Right moves focus one step towards UDP, stopping there.
func (f Focus) Right() Focus {
	if f >= FocusUDP {
		return FocusUDP
	}
	return f + 1
}

// Left moves focus one step towards None, stopping there.
func (f Focus) Left() Focus {
	if f <= FocusNone {
		return FocusNone
	}
	return f - 1
}

func (f Focus) String() string {
	switch f {
	case FocusNone:
		return "None"
	case FocusTCP:
		return "TCP"
	case FocusUDP:
		return "UDP"
	default:
		return fmt.Sprintf("Focus(%d)", int(f))
	}
}

// ParseFocus reads a focus name as written in config files: none, tcp or udp.
func ParseFocus(s string) (Focus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return FocusNone, nil
	case "tcp":
		return FocusTCP, nil
	case "udp":
		return FocusUDP, nil
	default:
		return FocusNone, fmt.Errorf("unknown focus %q (expected none, tcp or udp)", s)
	}
}

// Key is an abstract key press, decoupled from any terminal library.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyQuit
)
