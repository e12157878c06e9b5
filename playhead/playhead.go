// Package playhead keeps a beat-positioned playhead's pixel frame in step
// with the timeline geometry.
//
// The frame is a pure function of the position and the geometry. Setters
// recompute it synchronously and return it. Dragging the playhead only
// notifies the Delegate; the container converts pixels back to beats and
// calls SetPosition.
package playhead

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rileylov/timetable/geom"
	"github.com/rileylov/timetable/gesture"
	"github.com/rileylov/timetable/internal/log"
)

// Geometry is the timeline layout needed to place a beat.
type Geometry struct {
	BeatWidth      float64
	RowHeight      float64
	RowHeaderWidth float64
}

// GuideLine is the vertical line drawn from the glyph down the content area.
type GuideLine struct {
	Color  lipgloss.TerminalColor
	Width  float64
	Height float64
}

// DefaultGuideLine is a white line one pixel wide with no extra height.
func DefaultGuideLine() GuideLine {
	return GuideLine{
		Color: lipgloss.Color("#FFFFFF"),
		Width: 1,
	}
}

// Delegate is told about drags on the playhead. Translations are cumulative
// since the drag began.
type Delegate interface {
	PlayheadDidDrag(m *Mapper, d gesture.Drag)
}

// Mapper is the presentation state of one playhead.
type Mapper struct {
	// Delegate is not owned and may be nil.
	Delegate Delegate
	Log      *log.Logger

	position float64
	geometry Geometry
	guide    GuideLine
	frame    geom.Rect
	layer    Layer
}

// New returns a playhead at beat 0 with zero geometry and the glyph visual.
func New() *Mapper {
	m := &Mapper{
		guide: DefaultGuideLine(),
		layer: &glyphLayer{},
	}
	m.recompute()
	return m
}

func (m *Mapper) Position() float64 { return m.position }
func (m *Mapper) Geometry() Geometry { return m.geometry }
func (m *Mapper) GuideLine() GuideLine {
	return m.guide
}

// Frame is the playhead rectangle in container space.
func (m *Mapper) Frame() geom.Rect { return m.frame }

// SetPosition moves the playhead to beats. Negative values are kept and put
// the frame left of the header.
func (m *Mapper) SetPosition(beats float64) geom.Rect {
	m.position = beats
	return m.recompute()
}

// SetGeometry replaces the timeline geometry.
func (m *Mapper) SetGeometry(g Geometry) geom.Rect {
	m.geometry = g
	return m.recompute()
}

// SetGuideLine restyles the guide line. The frame does not depend on it.
func (m *Mapper) SetGuideLine(g GuideLine) {
	m.guide = g
}

// FrameFor computes the frame for a position and geometry. The glyph is
// centered on the beat, as wide as a row and one pixel shorter, leaving a
// one pixel top inset.
func FrameFor(beats float64, g Geometry) geom.Rect {
	w := g.RowHeight
	return geom.Rect{
		X: g.RowHeaderWidth + beats*g.BeatWidth - w/2,
		Y: 1,
		W: w,
		H: g.RowHeight - 1,
	}
}

func (m *Mapper) recompute() geom.Rect {
	m.frame = FrameFor(m.position, m.geometry)
	m.layer.resize(m.frame)
	return m.frame
}

// GuideFrame is the guide line rectangle, local to Frame. It is centered
// horizontally and starts half way down the glyph.
func (m *Mapper) GuideFrame() geom.Rect {
	half := m.frame.H / 2
	lw := m.guide.Width
	return geom.Rect{
		X: m.frame.W/2 - lw/2,
		Y: m.frame.H - half,
		W: lw,
		H: m.guide.Height + half,
	}
}

// OnPointerDrag forwards a drag on the playhead to the delegate untouched.
func (m *Mapper) OnPointerDrag(d gesture.Drag) {
	m.Log.Debugf("playhead: drag %v %v", d.Phase, d.Translation)
	if m.Delegate != nil {
		m.Delegate.PlayheadDidDrag(m, d)
	}
}
