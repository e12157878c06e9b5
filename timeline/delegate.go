package timeline

import (
	"github.com/rileylov/timetable/cell"
	"github.com/rileylov/timetable/geom"
	"github.com/rileylov/timetable/gesture"
	"github.com/rileylov/timetable/playhead"
)

// Custom action ids the container implements itself.
const (
	ActionCopy      = "copy"
	ActionDuplicate = "duplicate"
)

var (
	_ cell.Delegate     = (*Model)(nil)
	_ playhead.Delegate = (*Model)(nil)
)

// CellDidMove previews the snapped move while the drag runs, commits it on
// Ended and restores the committed bounds on Cancelled.
func (m *Model) CellDidMove(c *cell.Controller, d gesture.Drag) {
	m.applyCellDrag(c, d, m.moved)
}

// CellDidResize is CellDidMove for the trailing edge.
func (m *Model) CellDidResize(c *cell.Controller, d gesture.Drag) {
	m.applyCellDrag(c, d, m.resized)
}

func (m *Model) applyCellDrag(c *cell.Controller, d gesture.Drag, edit func(Event, geom.Vec) Event) {
	e := m.find(c.ID)
	if e == nil {
		return
	}
	switch d.Phase {
	case gesture.Began, gesture.Changed:
		next := edit(*e, d.Translation)
		c.SetBounds(m.boundsFor(&next))
	case gesture.Ended:
		*e = edit(*e, d.Translation)
		c.SetBounds(m.boundsFor(e))
		m.syncTable()
		m.setStatus("%s", e)
	case gesture.Cancelled:
		c.SetBounds(m.boundsFor(e))
		m.setStatus("%s: drag cancelled", e.Label)
	}
}

func (m *Model) CellDidDelete(c *cell.Controller) {
	e := m.find(c.ID)
	if e == nil {
		return
	}
	label := e.String()
	m.remove(c.ID)
	m.syncTable()
	m.setStatus("deleted %s", label)
}

func (m *Model) CellDidInvokeAction(c *cell.Controller, id string) {
	e := m.find(c.ID)
	if e == nil {
		return
	}
	switch id {
	case ActionCopy:
		if err := m.clipboard(e.String()); err != nil {
			m.setStatus("Couldn't write to clipboard: %v", err)
			return
		}
		m.setStatus("copied %s", e)
	case ActionDuplicate:
		dup := *e
		dup.ID = ""
		dup.Start = clamp(e.End(), 0, float64(m.opts.Beats)-dup.Length)
		added := m.insert(dup)
		m.syncTable()
		m.setStatus("added %s", added)
	default:
		m.setStatus("%s: no handler for action %q", e.Label, id)
	}
}

// PlayheadDidDrag turns the drag translation into a snapped beat position.
// With LiveFollow the playhead tracks every change; otherwise it moves on
// release. Cancelling puts it back where the drag began.
func (m *Model) PlayheadDidDrag(p *playhead.Mapper, d gesture.Drag) {
	if d.Phase == gesture.Began {
		m.dragFrom = p.Position()
	}
	beats := clamp(m.snap(m.dragFrom+m.beatsFor(d.Translation.X)), 0, float64(m.opts.Beats))
	switch d.Phase {
	case gesture.Began, gesture.Changed:
		if m.opts.LiveFollow {
			p.SetPosition(beats)
		}
	case gesture.Ended:
		p.SetPosition(beats)
		m.setStatus("playhead at %s", formatBeats(beats))
	case gesture.Cancelled:
		p.SetPosition(m.dragFrom)
	}
}
