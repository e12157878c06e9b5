// Package cell implements the gesture surface of one editable timeline block.
//
// A Controller classifies drags as move or resize, runs the long-press action
// menu through a FocusBroker and reports intents to its Delegate. It never
// changes its own bounds; the container does that in response to callbacks.
package cell

import (
	"errors"
	"fmt"

	"github.com/rileylov/timetable/geom"
	"github.com/rileylov/timetable/gesture"
	"github.com/rileylov/timetable/internal/log"
)

// DefaultResizeMargin is the width of the trailing resize region.
const DefaultResizeMargin = 10

// DeleteActionID identifies the built-in delete menu item.
const DeleteActionID = "delete"

var (
	ErrReservedAction  = errors.New("reserved action id")
	ErrDuplicateAction = errors.New("duplicate action id")
)

// Action is a menu entry. ID is what the delegate receives.
type Action struct {
	Label string
	ID    string
}

// DeleteAction is always the first menu item.
var DeleteAction = Action{Label: "Delete", ID: DeleteActionID}

// Intent is the classification of a drag gesture.
type Intent int

const (
	IntentNone Intent = iota
	IntentMove
	IntentResize
)

func (i Intent) String() string {
	switch i {
	case IntentMove:
		return "move"
	case IntentResize:
		return "resize"
	default:
		return "none"
	}
}

// Delegate receives the domain intents of a cell. Translations are
// cumulative since the gesture began.
type Delegate interface {
	CellDidMove(c *Controller, d gesture.Drag)
	CellDidResize(c *Controller, d gesture.Drag)
	CellDidDelete(c *Controller)
	CellDidInvokeAction(c *Controller, id string)
}

// Controller owns the gesture surface of one cell.
type Controller struct {
	ID           string
	ResizeMargin float64
	// Delegate is not owned; the container clears it before dropping the cell.
	Delegate Delegate
	Log      *log.Logger

	bounds  geom.Rect
	actions []Action
	broker  *FocusBroker
	intent  Intent
}

// NewController returns a controller with the default resize margin and no
// custom actions.
func NewController(id string, bounds geom.Rect) *Controller {
	return &Controller{
		ID:           id,
		ResizeMargin: DefaultResizeMargin,
		bounds:       bounds,
	}
}

func (c *Controller) Bounds() geom.Rect { return c.bounds }

// SetBounds is called by the container after it commits a move or resize.
func (c *Controller) SetBounds(r geom.Rect) { c.bounds = r }

// Actions returns the custom actions in registration order.
func (c *Controller) Actions() []Action {
	return append([]Action(nil), c.actions...)
}

// AddAction appends a custom menu action.
func (c *Controller) AddAction(label, id string) error {
	if id == DeleteActionID {
		return fmt.Errorf("add action %q: %w", id, ErrReservedAction)
	}
	for _, a := range c.actions {
		if a.ID == id {
			return fmt.Errorf("add action %q: %w", id, ErrDuplicateAction)
		}
	}
	c.actions = append(c.actions, Action{Label: label, ID: id})
	return nil
}

// MenuItems is the long-press menu: delete first, then the custom actions.
func (c *Controller) MenuItems() []Action {
	items := make([]Action, 0, len(c.actions)+1)
	items = append(items, DeleteAction)
	return append(items, c.actions...)
}

// Attach inserts the cell into a container's focus domain.
func (c *Controller) Attach(b *FocusBroker) { c.broker = b }

// Detach removes the cell from its container, giving up focus and any menu
// it owns.
func (c *Controller) Detach() {
	if c.broker != nil {
		c.broker.Release(c)
	}
	c.broker = nil
}

func (c *Controller) Attached() bool { return c.broker != nil }

// Focused reports whether the cell holds the container's input focus.
func (c *Controller) Focused() bool {
	return c.broker != nil && c.broker.Focused() == c
}

// MenuVisible reports whether this cell's menu is on screen.
func (c *Controller) MenuVisible() bool {
	if c.broker == nil {
		return false
	}
	m := c.broker.Menu()
	return m != nil && m.Owner == c
}

// Classify returns the intent for a gesture starting at cell-local x. The
// boundary is inclusive: x >= width-margin is a resize.
func (c *Controller) Classify(x float64) Intent {
	if x >= c.bounds.W-c.ResizeMargin {
		return IntentResize
	}
	return IntentMove
}

// Intent is the classification of the drag in progress, IntentNone when idle.
func (c *Controller) Intent() Intent { return c.intent }

// OnPointerDrag routes one drag phase. The classification made on Began holds
// until the gesture ends or is cancelled.
func (c *Controller) OnPointerDrag(d gesture.Drag) {
	if d.Phase == gesture.Began {
		c.intent = c.Classify(d.Start.X)
		c.Log.Debugf("cell %s: drag began at %v as %v", c.ID, d.Start, c.intent)
	}
	intent := c.intent
	if intent == IntentNone {
		c.Log.Debugf("cell %s: dropping %v phase without a gesture", c.ID, d.Phase)
		return
	}
	if d.Phase.Terminal() {
		c.intent = IntentNone
	}
	if c.Delegate == nil {
		return
	}
	switch intent {
	case IntentMove:
		c.Delegate.CellDidMove(c, d)
	case IntentResize:
		c.Delegate.CellDidResize(c, d)
	}
}

// OnLongPress presents the action menu when a long press is recognized. A
// detached cell ignores it.
func (c *Controller) OnLongPress(phase gesture.Phase) {
	if phase != gesture.Began {
		return
	}
	if c.broker == nil {
		c.Log.Debugf("cell %s: long press while detached, no menu", c.ID)
		return
	}
	c.broker.RequestFocus(c)
	c.broker.Present(&Menu{
		Owner:  c,
		Items:  c.MenuItems(),
		Anchor: c.bounds,
	})
}

// OnMenuAction dispatches a chosen menu item. Custom ids are passed through
// untouched.
func (c *Controller) OnMenuAction(id string) {
	if c.Delegate == nil {
		return
	}
	if id == DeleteActionID {
		c.Delegate.CellDidDelete(c)
		return
	}
	c.Delegate.CellDidInvokeAction(c, id)
}
