// Package gesture turns raw bubbletea mouse messages into the discrete
// gesture phases consumed by the timeline components.
package gesture

import "github.com/rileylov/timetable/geom"

// Phase is the stage of a continuous gesture.
type Phase int

const (
	Began Phase = iota
	Changed
	Ended
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Began:
		return "began"
	case Changed:
		return "changed"
	case Ended:
		return "ended"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether p closes a gesture.
func (p Phase) Terminal() bool {
	return p == Ended || p == Cancelled
}

// Drag is one phase delivery of a pointer drag.
//
// Start is the touch point where the gesture began, local to the gesture's
// target. Translation is cumulative: it is always the pointer position minus
// the press position, never the delta since the previous phase.
type Drag struct {
	Phase       Phase
	Start       geom.Vec
	Translation geom.Vec
}
