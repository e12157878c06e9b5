package cell

import (
	"github.com/rileylov/timetable/geom"
	"github.com/rileylov/timetable/internal/log"
)

// MenuState is the presentation state of a Menu.
type MenuState int

const (
	MenuHidden MenuState = iota
	MenuPresenting
	MenuVisible
	MenuDismissing
)

func (s MenuState) String() string {
	switch s {
	case MenuHidden:
		return "hidden"
	case MenuPresenting:
		return "presenting"
	case MenuVisible:
		return "visible"
	case MenuDismissing:
		return "dismissing"
	default:
		return "unknown"
	}
}

// Menu is a context menu anchored to its owner's bounds in container space.
type Menu struct {
	Owner  *Controller
	Items  []Action
	Anchor geom.Rect

	state MenuState
}

func (m *Menu) State() MenuState { return m.state }

func (m *Menu) ownerID() string {
	if m.Owner == nil {
		return "-"
	}
	return m.Owner.ID
}

// FocusBroker is the container-wide slot for input focus and the one visible
// menu. It is only touched from the update loop.
type FocusBroker struct {
	Log *log.Logger
	// OnTransition, when set, observes every menu state change.
	OnTransition func(m *Menu, from, to MenuState)

	focus *Controller
	menu  *Menu
}

func NewFocusBroker(l *log.Logger) *FocusBroker {
	return &FocusBroker{Log: l}
}

// RequestFocus makes c the focus owner, taking focus from any other cell.
func (b *FocusBroker) RequestFocus(c *Controller) bool {
	if b.focus != c {
		b.Log.Debugf("focus: %s", c.ID)
	}
	b.focus = c
	return true
}

func (b *FocusBroker) Focused() *Controller { return b.focus }

// Menu returns the visible menu or nil.
func (b *FocusBroker) Menu() *Menu { return b.menu }

// Present shows m. A visible menu is dismissed first, so there is never more
// than one.
func (b *FocusBroker) Present(m *Menu) {
	if m == nil {
		return
	}
	if m.state != MenuHidden && m.state != MenuDismissing {
		b.Log.Warnf("menu: present from state %v ignored", m.state)
		return
	}
	b.Dismiss()
	b.transition(m, MenuPresenting)
	b.menu = m
	b.transition(m, MenuVisible)
}

// Dismiss hides the visible menu, if any.
func (b *FocusBroker) Dismiss() {
	m := b.menu
	if m == nil {
		return
	}
	b.transition(m, MenuDismissing)
	b.menu = nil
	b.transition(m, MenuHidden)
}

// Choose dismisses the visible menu and hands id to its owner. It reports
// false when no menu is visible or id is not one of its items.
func (b *FocusBroker) Choose(id string) bool {
	m := b.menu
	if m == nil {
		return false
	}
	found := false
	for _, it := range m.Items {
		if it.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	b.Dismiss()
	if m.Owner != nil {
		m.Owner.OnMenuAction(id)
	}
	return true
}

// Release drops focus and the menu held by c.
func (b *FocusBroker) Release(c *Controller) {
	if b.menu != nil && b.menu.Owner == c {
		b.Dismiss()
	}
	if b.focus == c {
		b.focus = nil
	}
}

func (b *FocusBroker) transition(m *Menu, to MenuState) {
	from := m.state
	m.state = to
	b.Log.Debugf("menu %s: %v -> %v", m.ownerID(), from, to)
	if b.OnTransition != nil {
		b.OnTransition(m, from, to)
	}
}
