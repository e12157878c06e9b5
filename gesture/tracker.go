// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

package gesture

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileylov/timetable/geom"
)

// DefaultLongPress is how long a press must stay still to count as a long press.
const DefaultLongPress = 500 * time.Millisecond

// State represents the current state of the tracker.
type State int

const (
	StateIdle State = iota
	StatePressed
	StateDragging
	StateHeld
)

// Kind tells which recognizer produced an Event.
type Kind int

const (
	KindDrag Kind = iota
	KindLongPress
	KindTap
)

// Hit describes what lies under the pointer for one mouse message. The
// container resolves it; the tracker never hit-tests by itself.
type Hit struct {
	Target string   // empty when nothing is under the pointer
	Point  geom.Vec // container coordinates
	Local  geom.Vec // target-local coordinates
}

// Event is a recognized gesture phase for a target. For KindLongPress and
// KindTap only Drag.Phase and Drag.Start are meaningful.
type Event struct {
	Kind   Kind
	Target string
	Drag   Drag
}

// LongPressMsg is delivered by the timer armed on press.
type LongPressMsg struct {
	seq int
}

// Tracker recognizes drags and long presses from mouse messages. A gesture
// belongs to the target under the pointer at press time for its whole life.
type Tracker struct {
	LongPress time.Duration

	state  State
	target string
	origin geom.Vec // container point at press
	start  geom.Vec // target-local point at press
	last   geom.Vec
	seq    int
}

// NewTracker creates a new idle tracker.
func NewTracker() *Tracker {
	return &Tracker{
		LongPress: DefaultLongPress,
		state:     StateIdle,
	}
}

// HandleMouse processes a mouse message. It returns the recognized event, a
// command arming the long-press timer, and whether the message was consumed.
// A consumed message may carry no event; the Event then has an empty Target.
func (t *Tracker) HandleMouse(msg tea.MouseMsg, hit Hit) (Event, tea.Cmd, bool) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || t.state != StateIdle || hit.Target == "" {
			return Event{}, nil, false
		}
		t.press(hit)
		return Event{}, t.armLongPress(), true

	case tea.MouseActionMotion:
		switch t.state {
		case StatePressed:
			if hit.Point == t.origin {
				return Event{}, nil, true
			}
			t.state = StateDragging
			return t.drag(Began, hit.Point), nil, true
		case StateDragging:
			if hit.Point == t.last {
				return Event{}, nil, true
			}
			return t.drag(Changed, hit.Point), nil, true
		case StateHeld:
			return Event{}, nil, true
		}

	case tea.MouseActionRelease:
		var ev Event
		switch t.state {
		case StatePressed:
			ev = Event{Kind: KindTap, Target: t.target, Drag: Drag{Phase: Ended, Start: t.start}}
		case StateDragging:
			ev = t.drag(Ended, hit.Point)
		case StateHeld:
			ev = Event{Kind: KindLongPress, Target: t.target, Drag: Drag{Phase: Ended, Start: t.start}}
		default:
			return Event{}, nil, false
		}
		t.reset()
		return ev, nil, true
	}
	return Event{}, nil, false
}

// HandleLongPress processes a fired long-press timer. Timers armed by an
// earlier press, or firing after the pointer moved, are ignored.
func (t *Tracker) HandleLongPress(msg LongPressMsg) (Event, bool) {
	if msg.seq != t.seq || t.state != StatePressed {
		return Event{}, false
	}
	t.state = StateHeld
	return Event{Kind: KindLongPress, Target: t.target, Drag: Drag{Phase: Began, Start: t.start}}, true
}

// Cancel aborts the gesture in progress. Drags and long presses produce a
// Cancelled phase; a plain press is dropped silently.
func (t *Tracker) Cancel() (Event, bool) {
	var ev Event
	switch t.state {
	case StateDragging:
		ev = t.drag(Cancelled, t.last)
	case StateHeld:
		ev = Event{Kind: KindLongPress, Target: t.target, Drag: Drag{Phase: Cancelled, Start: t.start}}
	case StatePressed:
		t.reset()
		return Event{}, false
	default:
		return Event{}, false
	}
	t.reset()
	return ev, true
}

// State returns the tracker state.
func (t *Tracker) State() State {
	return t.state
}

// IsDragging returns true if currently in a drag operation
func (t *Tracker) IsDragging() bool {
	return t.state == StateDragging
}

// Target returns the target of the gesture in progress.
func (t *Tracker) Target() string {
	return t.target
}

func (t *Tracker) press(hit Hit) {
	t.seq++
	t.state = StatePressed
	t.target = hit.Target
	t.origin = hit.Point
	t.start = hit.Local
	t.last = hit.Point
}

func (t *Tracker) drag(phase Phase, p geom.Vec) Event {
	t.last = p
	return Event{
		Kind:   KindDrag,
		Target: t.target,
		Drag: Drag{
			Phase:       phase,
			Start:       t.start,
			Translation: p.Sub(t.origin),
		},
	}
}

func (t *Tracker) armLongPress() tea.Cmd {
	if t.LongPress <= 0 {
		return nil
	}
	seq := t.seq
	return tea.Tick(t.LongPress, func(time.Time) tea.Msg {
		return LongPressMsg{seq: seq}
	})
}

func (t *Tracker) reset() {
	t.state = StateIdle
	t.target = ""
	t.origin = geom.Vec{}
	t.start = geom.Vec{}
	t.last = geom.Vec{}
}
