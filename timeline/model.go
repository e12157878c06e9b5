// Copyright (c) Liam Stanley <liam@liam.sh>. All rights reserved. Use of
// this source code is governed by the MIT license that can be found in
// the LICENSE file.

// Package timeline is the piano-roll container. It owns the events and the
// timeline geometry, renders them, and turns cell and playhead callbacks
// into committed beat positions.
package timeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/rileylov/timetable/cell"
	"github.com/rileylov/timetable/geom"
	"github.com/rileylov/timetable/gesture"
	"github.com/rileylov/timetable/internal/log"
	"github.com/rileylov/timetable/playhead"
)

const playheadTarget = "playhead"

// Options configures a Model.
type Options struct {
	Beats        int
	Rows         int
	Geometry     playhead.Geometry
	Snap         float64 // beats
	LiveFollow   bool    // move the playhead on every drag change, not only on release
	LongPress    time.Duration
	ResizeMargin float64
	Actions      []cell.Action
	Image        playhead.Image
	Visual       playhead.Mode
	Guide        playhead.GuideLine
	Log          *log.Logger
	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
}

// Model is the timeline container.
type Model struct {
	id     string
	opts   Options
	log    *log.Logger
	width  int
	height int

	events   []*Event
	cells    map[string]*cell.Controller
	broker   *cell.FocusBroker
	playhead *playhead.Mapper
	tracker  *gesture.Tracker
	dragFrom float64 // playhead position when its drag began
	nextID   int

	table     table.Model
	input     textinput.Model
	prompting bool
	status    string

	// origin locates the grid on screen.
	origin    func() (geom.Vec, bool)
	clipboard func(string) error
}

// New creates a container holding events.
func New(opts Options, events ...Event) *Model {
	m := &Model{
		id:        zone.NewPrefix(),
		opts:      opts,
		log:       opts.Log,
		cells:     make(map[string]*cell.Controller),
		broker:    cell.NewFocusBroker(opts.Log),
		playhead:  playhead.New(),
		tracker:   gesture.NewTracker(),
		clipboard: opts.Clipboard,
	}
	if m.clipboard == nil {
		m.clipboard = clipboard.WriteAll
	}
	m.origin = m.zoneOrigin
	if opts.LongPress > 0 {
		m.tracker.LongPress = opts.LongPress
	}

	m.playhead.Log = opts.Log
	m.playhead.Delegate = m
	if opts.Guide.Width > 0 {
		m.playhead.SetGuideLine(opts.Guide)
	}
	if opts.Visual == playhead.ModeImage {
		m.playhead.SetImage(opts.Image)
	}

	m.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Label", Width: 12},
			{Title: "Row", Width: 4},
			{Title: "Start", Width: 8},
			{Title: "Length", Width: 8},
		}),
		table.WithHeight(6),
		table.WithFocused(true),
	)
	m.table.SetStyles(tableStyles())

	m.input = textinput.New()
	m.input.Placeholder = "beat, e.g. 4.5"
	m.input.CharLimit = 16
	m.input.Width = 20

	for _, e := range events {
		m.insert(e)
	}
	m.setGeometry(opts.Geometry)
	m.syncTable()
	return m
}

// Events returns a snapshot of the events in insertion order.
func (m *Model) Events() []Event {
	out := make([]Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, *e)
	}
	return out
}

// Event returns the event with id.
func (m *Model) Event(id string) (Event, bool) {
	if e := m.find(id); e != nil {
		return *e, true
	}
	return Event{}, false
}

// Cell returns the controller for an event id.
func (m *Model) Cell(id string) *cell.Controller { return m.cells[id] }

func (m *Model) Playhead() *playhead.Mapper { return m.playhead }
func (m *Model) Broker() *cell.FocusBroker { return m.broker }
func (m *Model) Status() string { return m.status }

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.prompting {
			return m, m.updatePrompt(msg)
		}
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case gesture.LongPressMsg:
		if ev, ok := m.tracker.HandleLongPress(msg); ok {
			m.dispatch(ev)
		}

	case tea.BlurMsg:
		m.cancelGesture()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "esc":
		if !m.cancelGesture() {
			m.broker.Dismiss()
		}
	case "g":
		m.prompting = true
		m.input.SetValue("")
		return m.input.Focus()
	case "+", "=":
		g := m.playhead.Geometry()
		g.BeatWidth++
		m.setGeometry(g)
	case "-":
		g := m.playhead.Geometry()
		if g.BeatWidth <= 1 {
			return nil
		}
		g.BeatWidth--
		if e := m.narrowest(g.BeatWidth); e != nil {
			m.setStatus("zoom: %s would be narrower than its resize handle", e.Label)
			return nil
		}
		m.setGeometry(g)
	case "tab":
		if m.playhead.Mode() == playhead.ModeGlyph {
			m.playhead.SetImage(m.opts.Image)
		} else {
			m.playhead.SetGlyph()
		}
	case "n":
		m.addAtPlayhead()
	case "d", "delete":
		if c := m.broker.Focused(); c != nil {
			c.OnMenuAction(cell.DeleteActionID)
		}
	case "enter":
		if row := m.table.SelectedRow(); row != nil {
			if c := m.cells[row[0]]; c != nil {
				m.broker.RequestFocus(c)
			}
		}
	case "up", "down", "k", "j":
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) updatePrompt(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closePrompt()
		return nil
	case tea.KeyEnter:
		v := strings.TrimSpace(m.input.Value())
		m.closePrompt()
		beats, err := strconv.ParseFloat(v, 64)
		if err != nil {
			m.setStatus("goto: %q is not a beat", v)
			return nil
		}
		m.playhead.SetPosition(beats)
		m.setStatus("playhead at %s", formatBeats(beats))
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.prompting = false
	m.input.Blur()
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if menu := m.broker.Menu(); menu != nil && msg.Action == tea.MouseActionPress {
		for i, it := range menu.Items {
			if zoneInBounds(m.menuItemID(i), msg) {
				m.broker.Choose(it.ID)
				return nil
			}
		}
		m.broker.Dismiss()
		return nil
	}

	origin, ok := m.origin()
	if !ok {
		return nil
	}
	p := geom.Vec{X: float64(msg.X), Y: float64(msg.Y)}.Sub(origin)
	ev, cmd, _ := m.tracker.HandleMouse(msg, m.hit(p))
	m.dispatch(ev)
	return cmd
}

// hit resolves the target under a grid point. The playhead is on top, then
// cells in reverse draw order.
func (m *Model) hit(p geom.Vec) gesture.Hit {
	h := gesture.Hit{Point: p}
	if f := m.playhead.Frame(); f.Contains(p) {
		h.Target = playheadTarget
		h.Local = f.Local(p)
		return h
	}
	for i := len(m.events) - 1; i >= 0; i-- {
		c := m.cells[m.events[i].ID]
		if b := c.Bounds(); b.Contains(p) {
			h.Target = c.ID
			h.Local = b.Local(p)
			return h
		}
	}
	return h
}

func (m *Model) dispatch(ev gesture.Event) {
	if ev.Target == "" {
		return
	}
	if ev.Target == playheadTarget {
		if ev.Kind == gesture.KindDrag {
			m.playhead.OnPointerDrag(ev.Drag)
		}
		return
	}
	c := m.cells[ev.Target]
	if c == nil {
		return
	}
	switch ev.Kind {
	case gesture.KindDrag:
		c.OnPointerDrag(ev.Drag)
	case gesture.KindLongPress:
		c.OnLongPress(ev.Drag.Phase)
	case gesture.KindTap:
		m.broker.RequestFocus(c)
	}
}

// cancelGesture aborts the drag or long press in progress. A cancelled long
// press takes its menu with it.
func (m *Model) cancelGesture() bool {
	ev, ok := m.tracker.Cancel()
	if !ok {
		return false
	}
	m.dispatch(ev)
	if ev.Kind == gesture.KindLongPress {
		m.broker.Dismiss()
	}
	return true
}

// narrowest returns the first event too short to stay movable at beat width
// bw, or nil.
func (m *Model) narrowest(bw float64) *Event {
	minLen := m.minLength(bw)
	for _, e := range m.events {
		if e.Length < minLen {
			return e
		}
	}
	return nil
}

// setGeometry pushes new geometry to the playhead and every cell.
func (m *Model) setGeometry(g playhead.Geometry) {
	m.playhead.SetGeometry(g)
	guide := m.playhead.GuideLine()
	guide.Height = g.RowHeight * float64(m.opts.Rows)
	m.playhead.SetGuideLine(guide)
	for _, e := range m.events {
		m.cells[e.ID].SetBounds(m.boundsFor(e))
	}
}

func (m *Model) insert(e Event) *Event {
	for e.ID == "" || m.cells[e.ID] != nil {
		m.nextID++
		e.ID = "e" + strconv.Itoa(m.nextID)
	}
	ev := &e
	m.events = append(m.events, ev)

	c := cell.NewController(e.ID, m.boundsFor(ev))
	if m.opts.ResizeMargin > 0 {
		c.ResizeMargin = m.opts.ResizeMargin
	}
	for _, a := range m.opts.Actions {
		if err := c.AddAction(a.Label, a.ID); err != nil {
			m.log.Warnf("cell %s: %v", e.ID, err)
		}
	}
	c.Log = m.log
	c.Delegate = m
	c.Attach(m.broker)
	m.cells[e.ID] = c
	return ev
}

func (m *Model) remove(id string) {
	for i, e := range m.events {
		if e.ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			break
		}
	}
	if c := m.cells[id]; c != nil {
		c.Detach()
		c.Delegate = nil
		delete(m.cells, id)
	}
}

func (m *Model) find(id string) *Event {
	for _, e := range m.events {
		if e.ID == id {
			return e
		}
	}
	return nil
}

func (m *Model) addAtPlayhead() {
	row := 0
	if c := m.broker.Focused(); c != nil {
		if e := m.find(c.ID); e != nil {
			row = e.Row
		}
	}
	e := Event{Row: row, Length: math.Max(1, m.minLength(m.playhead.Geometry().BeatWidth)), Label: "note"}
	e.Start = clamp(m.snap(m.playhead.Position()), 0, float64(m.opts.Beats)-e.Length)
	ev := m.insert(e)
	m.syncTable()
	m.setStatus("added %s", ev)
}

func (m *Model) syncTable() {
	rows := make([]table.Row, 0, len(m.events))
	for _, e := range m.events {
		rows = append(rows, table.Row{
			e.ID,
			e.Label,
			strconv.Itoa(e.Row + 1),
			formatBeats(e.Start),
			strconv.FormatFloat(e.Length, 'f', -1, 64),
		})
	}
	m.table.SetRows(rows)
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.log.Infof("%s", m.status)
}

func (m *Model) gridID() string          { return m.id + "grid" }
func (m *Model) menuItemID(i int) string { return m.id + "menu_" + strconv.Itoa(i) }

func (m *Model) zoneOrigin() (geom.Vec, bool) {
	z := zone.Get(m.gridID())
	if z == nil || z.IsZero() {
		return geom.Vec{}, false
	}
	return geom.Vec{X: float64(z.StartX), Y: float64(z.StartY)}, true
}

// zoneInBounds is replaced in tests, where nothing is rendered.
var zoneInBounds = func(id string, msg tea.MouseMsg) bool {
	return zone.Get(id).InBounds(msg)
}
