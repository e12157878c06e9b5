package playhead

import (
	"fmt"
	"math"
	"strings"

	"github.com/rileylov/timetable/geom"
)

// Mode selects how the playhead is drawn.
type Mode int

const (
	ModeGlyph Mode = iota
	ModeImage
)

func (m Mode) String() string {
	switch m {
	case ModeGlyph:
		return "glyph"
	case ModeImage:
		return "image"
	default:
		return "unknown"
	}
}

// ParseMode reads a mode name from configuration.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "glyph":
		return ModeGlyph, nil
	case "image":
		return ModeImage, nil
	}
	return ModeGlyph, fmt.Errorf("unknown playhead visual %q", s)
}

// Image is a pre-rendered picture, one string per terminal row.
type Image struct {
	Rows []string
}

// ImageFromString splits s into rows.
func ImageFromString(s string) Image {
	if s == "" {
		return Image{}
	}
	return Image{Rows: strings.Split(s, "\n")}
}

func (i Image) Empty() bool { return len(i.Rows) == 0 }

// Layer is the live visual representation. Bounds are local to the frame.
type Layer interface {
	Mode() Mode
	Bounds() geom.Rect
	resize(frame geom.Rect)
}

type glyphLayer struct {
	bounds geom.Rect
}

func (l *glyphLayer) Mode() Mode { return ModeGlyph }
func (l *glyphLayer) Bounds() geom.Rect { return l.bounds }
func (l *glyphLayer) resize(frame geom.Rect) { l.bounds = geom.Rect{W: frame.W, H: frame.H} }

// ImageLayer displays an Image sized to the frame.
type ImageLayer struct {
	Image  Image
	bounds geom.Rect
}

func (l *ImageLayer) Mode() Mode { return ModeImage }
func (l *ImageLayer) Bounds() geom.Rect { return l.bounds }
func (l *ImageLayer) resize(frame geom.Rect) { l.bounds = geom.Rect{W: frame.W, H: frame.H} }

// Layer returns the live representation. There is always exactly one.
func (m *Mapper) Layer() Layer { return m.layer }

func (m *Mapper) Mode() Mode { return m.layer.Mode() }

// SetGlyph tears down an image layer and installs the glyph.
func (m *Mapper) SetGlyph() {
	if m.layer.Mode() == ModeGlyph {
		return
	}
	m.install(&glyphLayer{})
}

// SetImage replaces the live layer with img. An empty image means the glyph.
func (m *Mapper) SetImage(img Image) {
	if img.Empty() {
		m.SetGlyph()
		return
	}
	m.install(&ImageLayer{Image: img})
}

func (m *Mapper) install(l Layer) {
	l.resize(m.frame)
	m.Log.Debugf("playhead: visual %v -> %v", m.layer.Mode(), l.Mode())
	m.layer = l
}

// CornerRadius rounds the top corners of the glyph body.
const CornerRadius = 3

// Glyph is the "flag on a pin" shape: a top-rounded body over a polygon that
// tapers to a tip on the guide line. Coordinates are local to the frame.
type Glyph struct {
	Body   geom.Rect
	Radius float64
	Tip    [4]geom.Vec
}

// Glyph returns the shape for the current frame and guide line width.
func (m *Mapper) Glyph() Glyph {
	return GlyphFor(m.frame.W, m.frame.H, m.guide.Width)
}

// GlyphFor builds the glyph for a w x h frame. The tip is narrowed around
// w/2 by the line width so it meets the guide line itself rather than its edge.
func GlyphFor(w, h, lineWidth float64) Glyph {
	half := h / 2
	body := geom.Rect{W: w, H: half}
	return Glyph{
		Body:   body,
		Radius: CornerRadius,
		Tip: [4]geom.Vec{
			{X: body.MinX() + 0.5, Y: body.MaxY()},
			{X: w/2 - lineWidth/2, Y: body.MaxY() + half},
			{X: w/2 + lineWidth, Y: body.MaxY() + half},
			{X: body.MaxX() - 0.5, Y: body.MaxY()},
		},
	}
}

// Contains reports whether p is inside the glyph.
func (g Glyph) Contains(p geom.Vec) bool {
	if g.Body.Contains(p) {
		return g.inRoundedTop(p)
	}
	return inPolygon(g.Tip[:], p)
}

func (g Glyph) inRoundedTop(p geom.Vec) bool {
	r := math.Min(g.Radius, math.Min(g.Body.W/2, g.Body.H))
	if r <= 0 || p.Y >= g.Body.MinY()+r {
		return true
	}
	var cx float64
	switch {
	case p.X < g.Body.MinX()+r:
		cx = g.Body.MinX() + r
	case p.X > g.Body.MaxX()-r:
		cx = g.Body.MaxX() - r
	default:
		return true
	}
	dx, dy := p.X-cx, p.Y-(g.Body.MinY()+r)
	return dx*dx+dy*dy <= r*r
}

// inPolygon is the even-odd ray casting test.
func inPolygon(poly []geom.Vec, p geom.Vec) bool {
	in := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}
