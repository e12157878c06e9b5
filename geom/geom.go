// Package geom holds the float geometry shared by the timeline components.
// All values are in container pixel space; in the terminal one pixel is one
// character cell.
package geom

import "fmt"

// Vec is a point or a translation.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

// Rect is an origin plus a size. Negative sizes are kept as-is.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Origin returns the top-left corner.
func (r Rect) Origin() Vec { return Vec{r.X, r.Y} }

// Offset returns r translated by v.
func (r Rect) Offset(v Vec) Rect {
	r.X += v.X
	r.Y += v.Y
	return r
}

// Contains reports whether p lies inside r. The max edges are exclusive.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.MinX() && p.X < r.MaxX() && p.Y >= r.MinY() && p.Y < r.MaxY()
}

// Local converts a container point into r-local coordinates.
func (r Rect) Local(p Vec) Vec {
	return p.Sub(r.Origin())
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g w:%g h:%g}", r.X, r.Y, r.W, r.H)
}
