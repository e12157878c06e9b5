package gesture

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/rileylov/timetable/geom"
)

func mouse(action tea.MouseAction) tea.MouseMsg {
	return tea.MouseMsg{Action: action, Button: tea.MouseButtonLeft}
}

func hitAt(x, y float64) Hit {
	return Hit{Target: "cell-1", Point: geom.Vec{X: x, Y: y}, Local: geom.Vec{X: x - 10, Y: y - 2}}
}

func TestTrackerDragPhases(t *testing.T) {
	tr := NewTracker()

	if _, cmd, ok := tr.HandleMouse(mouse(tea.MouseActionPress), hitAt(12, 3)); !ok || cmd == nil {
		t.Fatalf("press not consumed or no long-press timer armed")
	}

	var got []Event
	for _, step := range []struct {
		action tea.MouseAction
		x, y   float64
	}{
		{tea.MouseActionMotion, 12, 3}, // no movement yet
		{tea.MouseActionMotion, 14, 3},
		{tea.MouseActionMotion, 17, 4},
		{tea.MouseActionRelease, 18, 4},
	} {
		ev, _, ok := tr.HandleMouse(mouse(step.action), Hit{Point: geom.Vec{X: step.x, Y: step.y}})
		if !ok {
			t.Fatalf("%v at (%v,%v) not consumed", step.action, step.x, step.y)
		}
		if ev.Target != "" {
			got = append(got, ev)
		}
	}

	start := geom.Vec{X: 2, Y: 1}
	want := []Event{
		{Kind: KindDrag, Target: "cell-1", Drag: Drag{Phase: Began, Start: start, Translation: geom.Vec{X: 2}}},
		{Kind: KindDrag, Target: "cell-1", Drag: Drag{Phase: Changed, Start: start, Translation: geom.Vec{X: 5, Y: 1}}},
		{Kind: KindDrag, Target: "cell-1", Drag: Drag{Phase: Ended, Start: start, Translation: geom.Vec{X: 6, Y: 1}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if tr.State() != StateIdle {
		t.Errorf("state after release = %v, want idle", tr.State())
	}
}

func TestTrackerCancelDrag(t *testing.T) {
	tr := NewTracker()
	tr.HandleMouse(mouse(tea.MouseActionPress), hitAt(12, 3))
	tr.HandleMouse(mouse(tea.MouseActionMotion), Hit{Point: geom.Vec{X: 15, Y: 3}})

	ev, ok := tr.Cancel()
	if !ok {
		t.Fatal("Cancel during drag reported nothing")
	}
	want := Event{Kind: KindDrag, Target: "cell-1", Drag: Drag{Phase: Cancelled, Start: geom.Vec{X: 2, Y: 1}, Translation: geom.Vec{X: 3}}}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("cancel event mismatch (-want +got):\n%s", diff)
	}
	if _, ok := tr.Cancel(); ok {
		t.Error("second Cancel produced an event")
	}
}

func TestTrackerPressOutsideTargetIgnored(t *testing.T) {
	tr := NewTracker()
	if _, _, ok := tr.HandleMouse(mouse(tea.MouseActionPress), Hit{Point: geom.Vec{X: 1, Y: 1}}); ok {
		t.Error("press with no target was consumed")
	}
	if _, _, ok := tr.HandleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, hitAt(12, 3)); ok {
		t.Error("right button press was consumed")
	}
}

func TestTrackerLongPress(t *testing.T) {
	tr := NewTracker()
	tr.LongPress = time.Millisecond

	_, cmd, _ := tr.HandleMouse(mouse(tea.MouseActionPress), hitAt(12, 3))
	raw := cmd()
	msg, ok := raw.(LongPressMsg)
	if !ok {
		t.Fatalf("timer produced %T, want LongPressMsg", raw)
	}

	ev, ok := tr.HandleLongPress(msg)
	if !ok || ev.Kind != KindLongPress || ev.Drag.Phase != Began || ev.Target != "cell-1" {
		t.Fatalf("HandleLongPress = %+v, %v", ev, ok)
	}

	// Motion while held never turns into a drag.
	if ev, _, _ := tr.HandleMouse(mouse(tea.MouseActionMotion), Hit{Point: geom.Vec{X: 30, Y: 3}}); ev.Target != "" {
		t.Errorf("motion after long press produced %+v", ev)
	}
	ev, _, _ = tr.HandleMouse(mouse(tea.MouseActionRelease), Hit{Point: geom.Vec{X: 30, Y: 3}})
	if ev.Kind != KindLongPress || ev.Drag.Phase != Ended {
		t.Errorf("release after long press = %+v", ev)
	}
}

func TestTrackerStaleLongPressIgnored(t *testing.T) {
	tr := NewTracker()
	tr.LongPress = time.Millisecond

	_, cmd, _ := tr.HandleMouse(mouse(tea.MouseActionPress), hitAt(12, 3))
	stale := cmd().(LongPressMsg)
	tr.HandleMouse(mouse(tea.MouseActionMotion), Hit{Point: geom.Vec{X: 13, Y: 3}})

	if _, ok := tr.HandleLongPress(stale); ok {
		t.Error("long press recognized after the pointer moved")
	}
	tr.HandleMouse(mouse(tea.MouseActionRelease), Hit{Point: geom.Vec{X: 13, Y: 3}})

	tr.HandleMouse(mouse(tea.MouseActionPress), hitAt(12, 3))
	if _, ok := tr.HandleLongPress(stale); ok {
		t.Error("timer from an earlier press recognized a long press")
	}
}

func TestTrackerTap(t *testing.T) {
	tr := NewTracker()
	tr.HandleMouse(mouse(tea.MouseActionPress), hitAt(12, 3))
	ev, _, ok := tr.HandleMouse(tea.MouseMsg{Action: tea.MouseActionRelease}, Hit{Point: geom.Vec{X: 12, Y: 3}})
	if !ok || ev.Kind != KindTap || ev.Target != "cell-1" {
		t.Errorf("release without motion = %+v, %v; want tap", ev, ok)
	}
}

func TestPhaseString(t *testing.T) {
	for p, want := range map[Phase]string{Began: "began", Changed: "changed", Ended: "ended", Cancelled: "cancelled", Phase(9): "unknown"} {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
	if Began.Terminal() || Changed.Terminal() || !Ended.Terminal() || !Cancelled.Terminal() {
		t.Error("Terminal() classification wrong")
	}
}
