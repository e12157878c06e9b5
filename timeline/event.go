package timeline

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rileylov/timetable/cell"
	"github.com/rileylov/timetable/geom"
)

// Event is one musical event as the container knows it. Start and Length
// are in beats; the container is their single source of truth.
type Event struct {
	ID     string
	Row    int
	Start  float64
	Length float64
	Label  string
}

func (e Event) End() float64 { return e.Start + e.Length }

func (e Event) String() string {
	return fmt.Sprintf("%s row %d @ %s +%g", e.Label, e.Row+1, formatBeats(e.Start), e.Length)
}

// formatBeats prints beats as bar.beat with a fractional part, four beats per bar.
func formatBeats(b float64) string {
	bar := math.Floor(b / 4)
	beat := b - bar*4
	return fmt.Sprintf("%d.%s", int(bar)+1, strconv.FormatFloat(beat+1, 'f', -1, 64))
}

// boundsFor maps an event into container space. Row 0 sits under the
// playhead band, which is one row tall.
func (m *Model) boundsFor(e *Event) geom.Rect {
	g := m.playhead.Geometry()
	return geom.Rect{
		X: g.RowHeaderWidth + e.Start*g.BeatWidth,
		Y: g.RowHeight * float64(e.Row+1),
		W: e.Length * g.BeatWidth,
		H: g.RowHeight,
	}
}

func (m *Model) snap(beats float64) float64 {
	q := m.opts.Snap
	if q <= 0 {
		return beats
	}
	return math.Round(beats/q) * q
}

// beatsFor converts a horizontal pixel translation into snapped beats.
func (m *Model) beatsFor(dx float64) float64 {
	bw := m.playhead.Geometry().BeatWidth
	if bw == 0 {
		return 0
	}
	return m.snap(dx / bw)
}

func (m *Model) rowsFor(dy float64) int {
	rh := m.playhead.Geometry().RowHeight
	if rh == 0 {
		return 0
	}
	return int(math.Round(dy / rh))
}

// moved is e translated by a drag, snapped and kept inside the timeline.
func (m *Model) moved(e Event, t geom.Vec) Event {
	e.Start = clamp(m.snap(e.Start+m.beatsFor(t.X)), 0, float64(m.opts.Beats)-e.Length)
	e.Row = int(clamp(float64(e.Row+m.rowsFor(t.Y)), 0, float64(m.opts.Rows-1)))
	return e
}

// resized is e with its end dragged by t.X. The length never drops below
// minLength, so the cell keeps a move region left of its handle.
func (m *Model) resized(e Event, t geom.Vec) Event {
	minLen := m.minLength(m.playhead.Geometry().BeatWidth)
	e.Length = clamp(m.snap(e.Length+m.beatsFor(t.X)), minLen, float64(m.opts.Beats)-e.Start)
	return e
}

// minLength is the shortest event, in whole snap steps, whose cell is wider
// than its resize margin at beat width bw.
func (m *Model) minLength(bw float64) float64 {
	step := m.opts.Snap
	if step <= 0 {
		step = 1
	}
	if bw <= 0 {
		return step
	}
	return (math.Floor(m.resizeMargin()/(step*bw)) + 1) * step
}

func (m *Model) resizeMargin() float64 {
	if m.opts.ResizeMargin > 0 {
		return m.opts.ResizeMargin
	}
	return cell.DefaultResizeMargin
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(hi, v))
}
