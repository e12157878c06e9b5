package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileylov/timetable/cell"
	"github.com/rileylov/timetable/geom"
	"github.com/rileylov/timetable/playhead"
)

type paint int

const (
	paintBlank paint = iota
	paintHeader
	paintTick
	paintCell
	paintCellFocus
	paintHandle
	paintGuide
	paintPlayhead
)

// canvas is a character grid where every cell remembers its paint, so runs
// can be styled in one Render call each.
type canvas struct {
	w, h  int
	runes [][]rune
	paint [][]paint
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.runes = make([][]rune, c.h)
	c.paint = make([][]paint, c.h)
	for y := range c.runes {
		c.runes[y] = []rune(strings.Repeat(" ", c.w))
		c.paint[y] = make([]paint, c.w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.runes[y][x] = r
	c.paint[y][x] = p
}

func (c *canvas) text(x, y int, s string, p paint, limit int) {
	for i, r := range []rune(s) {
		if i >= limit {
			return
		}
		c.set(x+i, y, r, p)
	}
}

// span converts a float interval to the character cells it covers.
func span(lo, hi float64) (int, int) {
	return int(math.Round(lo)), int(math.Round(hi))
}

func (c *canvas) fill(r geom.Rect, ch rune, p paint) {
	x0, x1 := span(r.MinX(), r.MaxX())
	y0, y1 := span(r.MinY(), r.MaxY())
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.set(x, y, ch, p)
		}
	}
}

func (c *canvas) render(styles map[paint]lipgloss.Style) string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.paint[y][x] == c.paint[y][start] {
				continue
			}
			seg := string(c.runes[y][start:x])
			if st, ok := styles[c.paint[y][start]]; ok {
				seg = st.Render(seg)
			}
			b.WriteString(seg)
			start = x
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

func (m *Model) View() string {
	parts := []string{m.renderMenu()}
	parts = append(parts, zone.Mark(m.gridID(), m.renderGrid()))
	if m.prompting {
		parts = append(parts, promptStyle.Render("goto ")+m.input.View())
	}
	parts = append(parts, m.table.View(), m.renderFooter())
	return zone.Scan(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderMenu draws the visible menu as a row of buttons indented to its
// anchor. The line is kept when hidden so the grid does not jump.
func (m *Model) renderMenu() string {
	menu := m.broker.Menu()
	if menu == nil {
		return " "
	}
	var buttons []string
	for i, it := range menu.Items {
		style := menuButtonStyle
		if it.ID == cell.DeleteActionID {
			style = menuDeleteStyle
		}
		buttons = append(buttons, zone.Mark(m.menuItemID(i), style.Render(it.Label)))
	}
	indent := max(int(math.Round(menu.Anchor.X)), 0)
	return strings.Repeat(" ", indent) + lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

func (m *Model) renderGrid() string {
	g := m.playhead.Geometry()
	w := int(math.Ceil(g.RowHeaderWidth + float64(m.opts.Beats)*g.BeatWidth))
	h := int(math.Ceil(g.RowHeight * float64(m.opts.Rows+1)))
	c := newCanvas(w, h)
	header := int(g.RowHeaderWidth)

	for b := 0; b < m.opts.Beats; b++ {
		x := int(math.Round(g.RowHeaderWidth + float64(b)*g.BeatWidth))
		if b%4 == 0 {
			c.text(x, 0, strconv.Itoa(b/4+1), paintHeader, int(g.BeatWidth))
		}
		for y := int(g.RowHeight); y < h; y++ {
			c.set(x, y, '┊', paintTick)
		}
	}
	for r := 0; r < m.opts.Rows; r++ {
		y := int(g.RowHeight * float64(r+1))
		c.text(0, y, fmt.Sprintf("row %d", r+1), paintHeader, header-1)
	}

	for _, e := range m.events {
		cl := m.cells[e.ID]
		b := cl.Bounds()
		p := paintCell
		if cl.Focused() {
			p = paintCellFocus
		}
		c.fill(b, ' ', p)
		c.fill(geom.Rect{X: b.MaxX() - cl.ResizeMargin, Y: b.Y, W: cl.ResizeMargin, H: b.H}, ' ', paintHandle)
		c.text(int(math.Round(b.X))+1, int(b.Y+b.H/2), e.Label, p, int(b.W-cl.ResizeMargin)-1)
	}

	m.drawPlayhead(c)
	return c.render(m.palette())
}

func (m *Model) drawPlayhead(c *canvas) {
	f := m.playhead.Frame()
	guide := m.playhead.GuideFrame().Offset(f.Origin())
	gx := int(math.Floor(guide.X + guide.W/2))
	y0, y1 := span(guide.MinY(), guide.MaxY())
	for y := y0; y < y1; y++ {
		c.set(gx, y, '│', paintGuide)
	}

	x0, x1 := int(math.Floor(f.MinX())), int(math.Ceil(f.MaxX()))
	fy0, fy1 := int(math.Floor(f.MinY())), int(math.Ceil(f.MaxY()))
	switch l := m.playhead.Layer().(type) {
	case *playhead.ImageLayer:
		for i, row := range l.Image.Rows {
			if fy0+i >= fy1 {
				break
			}
			c.text(x0, fy0+i, row, paintPlayhead, x1-x0)
		}
	default:
		glyph := m.playhead.Glyph()
		for y := fy0; y < fy1; y++ {
			for x := x0; x < x1; x++ {
				p := geom.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5}
				if glyph.Contains(f.Local(p)) {
					c.set(x, y, '█', paintPlayhead)
				}
			}
		}
	}
}

func (m *Model) palette() map[paint]lipgloss.Style {
	guide := lipgloss.NewStyle()
	if col := m.playhead.GuideLine().Color; col != nil {
		guide = guide.Foreground(col)
	}
	return map[paint]lipgloss.Style{
		paintHeader:    headerStyle,
		paintTick:      tickStyle,
		paintCell:      cellStyle,
		paintCellFocus: cellFocusStyle,
		paintHandle:    handleStyle,
		paintGuide:     guide,
		paintPlayhead:  playheadStyle,
	}
}

func (m *Model) renderFooter() string {
	info := fmt.Sprintf("Beat %s | Visual %s | Snap %g | %d events | %s",
		formatBeats(m.playhead.Position()), m.playhead.Mode(), m.opts.Snap, len(m.events), m.status)
	help := "drag=move | edge=resize | hold=menu | g=goto | tab=visual | +/-=zoom | n=new | d=delete | q=quit"
	width := max(m.width, lipgloss.Width(info))
	return lipgloss.JoinVertical(lipgloss.Left,
		footerStyle.Width(width).Render(info),
		debugStyle.Render(help),
	)
}
