package playhead

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rileylov/timetable/geom"
	"github.com/rileylov/timetable/gesture"
)

func TestFrameFormula(t *testing.T) {
	m := New()
	m.SetGeometry(Geometry{BeatWidth: 20, RowHeight: 30, RowHeaderWidth: 50})
	got := m.SetPosition(4)
	want := geom.Rect{X: 115, Y: 1, W: 30, H: 29}
	if got != want {
		t.Errorf("frame = %v, want %v", got, want)
	}
	if m.Frame() != want {
		t.Errorf("Frame() = %v, want %v", m.Frame(), want)
	}
}

func TestSettersCommuteAndAreIdempotent(t *testing.T) {
	geometries := []Geometry{
		{},
		{BeatWidth: 20, RowHeight: 30, RowHeaderWidth: 50},
		{BeatWidth: 4, RowHeight: 3, RowHeaderWidth: 8},
		{BeatWidth: 0.75, RowHeight: 17, RowHeaderWidth: 0},
	}
	positions := []float64{0, 4, 3.25, -2, 1e6}

	for _, g := range geometries {
		for _, p := range positions {
			a := New()
			a.SetGeometry(Geometry{BeatWidth: 99, RowHeight: 99})
			a.SetGeometry(g)
			a.SetPosition(p)

			b := New()
			b.SetPosition(p)
			b.SetGeometry(g)

			if a.Frame() != b.Frame() {
				t.Errorf("g=%+v p=%v: geometry-then-position %v != position-then-geometry %v", g, p, a.Frame(), b.Frame())
			}
			before := a.Frame()
			a.SetPosition(p)
			a.SetGeometry(g)
			if a.Frame() != before {
				t.Errorf("g=%+v p=%v: recompute drifted %v -> %v", g, p, before, a.Frame())
			}
			if want := FrameFor(p, g); a.Frame() != want {
				t.Errorf("g=%+v p=%v: frame %v, want %v", g, p, a.Frame(), want)
			}
		}
	}
}

func TestZeroGeometry(t *testing.T) {
	m := New()
	want := geom.Rect{X: 0, Y: 1, W: 0, H: -1}
	if m.Frame() != want {
		t.Errorf("initial frame = %v, want %v", m.Frame(), want)
	}
	if got := m.SetPosition(12); got != want {
		t.Errorf("frame at beat 12 with zero geometry = %v, want %v", got, want)
	}
	_ = m.Glyph().Contains(geom.Vec{})
	_ = m.GuideFrame()
}

func TestNegativeBeatsNotClamped(t *testing.T) {
	m := New()
	m.SetGeometry(Geometry{BeatWidth: 10, RowHeight: 4, RowHeaderWidth: 6})
	got := m.SetPosition(-3)
	if want := (geom.Rect{X: 6 - 30 - 2, Y: 1, W: 4, H: 3}); got != want {
		t.Errorf("frame = %v, want %v", got, want)
	}
	if m.Position() != -3 {
		t.Errorf("position = %v, want -3", m.Position())
	}
}

func TestVisualSwitching(t *testing.T) {
	m := New()
	m.SetGeometry(Geometry{BeatWidth: 20, RowHeight: 30})
	if m.Mode() != ModeGlyph {
		t.Fatalf("default mode = %v, want glyph", m.Mode())
	}

	steps := []struct {
		apply func()
		want  Mode
	}{
		{func() { m.SetImage(ImageFromString("▼\n│")) }, ModeImage},
		{func() { m.SetImage(ImageFromString("V")) }, ModeImage},
		{func() { m.SetGlyph() }, ModeGlyph},
		{func() { m.SetGlyph() }, ModeGlyph},
		{func() { m.SetImage(Image{}) }, ModeGlyph},
		{func() { m.SetImage(ImageFromString("*")) }, ModeImage},
	}
	for i, s := range steps {
		s.apply()
		if m.Layer() == nil {
			t.Fatalf("step %d: no live layer", i)
		}
		if m.Mode() != s.want {
			t.Errorf("step %d: mode = %v, want %v", i, m.Mode(), s.want)
		}
		if got, want := m.Layer().Bounds(), (geom.Rect{W: 30, H: 29}); got != want {
			t.Errorf("step %d: layer bounds = %v, want %v", i, got, want)
		}
	}

	img, ok := m.Layer().(*ImageLayer)
	if !ok || img.Image.Rows[0] != "*" {
		t.Errorf("live layer = %#v, want image *", m.Layer())
	}
}

func TestLayerFollowsFrame(t *testing.T) {
	m := New()
	m.SetImage(ImageFromString("#"))
	m.SetGeometry(Geometry{BeatWidth: 2, RowHeight: 5})
	if got, want := m.Layer().Bounds(), (geom.Rect{W: 5, H: 4}); got != want {
		t.Errorf("image bounds = %v, want %v", got, want)
	}
}

type dragRecorder struct {
	drags []gesture.Drag
}

func (r *dragRecorder) PlayheadDidDrag(_ *Mapper, d gesture.Drag) {
	r.drags = append(r.drags, d)
}

func TestDragForwardedWithoutMoving(t *testing.T) {
	rec := &dragRecorder{}
	m := New()
	m.Delegate = rec
	m.SetGeometry(Geometry{BeatWidth: 20, RowHeight: 30, RowHeaderWidth: 50})
	frame := m.SetPosition(4)

	var want []gesture.Drag
	for i, p := range []gesture.Phase{gesture.Began, gesture.Changed, gesture.Changed, gesture.Cancelled} {
		d := gesture.Drag{Phase: p, Start: geom.Vec{X: 15, Y: 3}, Translation: geom.Vec{X: float64(10 * i)}}
		want = append(want, d)
		m.OnPointerDrag(d)
	}
	if diff := cmp.Diff(want, rec.drags); diff != "" {
		t.Errorf("drags mismatch (-want +got):\n%s", diff)
	}
	if m.Frame() != frame || m.Position() != 4 {
		t.Errorf("drag moved the playhead: frame %v position %v", m.Frame(), m.Position())
	}

	m.Delegate = nil
	m.OnPointerDrag(gesture.Drag{Phase: gesture.Began})
}

func TestGuideFrame(t *testing.T) {
	m := New()
	m.SetGeometry(Geometry{BeatWidth: 20, RowHeight: 30, RowHeaderWidth: 50})
	m.SetGuideLine(GuideLine{Width: 2, Height: 100})
	want := geom.Rect{X: 14, Y: 14.5, W: 2, H: 114.5}
	if got := m.GuideFrame(); got != want {
		t.Errorf("guide = %v, want %v", got, want)
	}
	if m.Frame() != (geom.Rect{X: 115, Y: 1, W: 30, H: 29}) {
		t.Errorf("guide line changed the frame: %v", m.Frame())
	}
}

func TestDefaults(t *testing.T) {
	m := New()
	g := m.GuideLine()
	if g.Width != 1 || g.Height != 0 || g.Color == nil {
		t.Errorf("default guide = %+v", g)
	}
	if m.Geometry() != (Geometry{}) || m.Position() != 0 {
		t.Errorf("default geometry %+v position %v", m.Geometry(), m.Position())
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeGlyph, "Glyph": ModeGlyph, " image ": ModeImage} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseMode("svg"); err == nil {
		t.Error("ParseMode(svg) succeeded")
	}
}
