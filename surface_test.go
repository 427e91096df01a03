package bango

import "testing"

func TestNewSurfaceDefaults(t *testing.T) {
	s := NewSurface(320, 240)
	if s.Root() == nil || s.Document() == nil || s.Clock() == nil {
		t.Fatal("surface should own a root, a document and a clock")
	}
	if w, h := s.Size(); w != 320 || h != 240 {
		t.Errorf("Size = %vx%v, want 320x240", w, h)
	}
	s.SetSize(640, 480)
	if w, h := s.Size(); w != 640 || h != 480 {
		t.Errorf("Size after SetSize = %vx%v", w, h)
	}
	if s.headless {
		t.Error("NewSurface should poll input")
	}
	if !NewHeadlessSurface(1, 1).headless {
		t.Error("NewHeadlessSurface should not poll input")
	}
}

func TestSetClockNilRestoresMonotonic(t *testing.T) {
	s, _ := newTestSurface()
	s.SetClock(nil)
	if _, ok := s.Clock().(monotonicClock); !ok {
		t.Errorf("SetClock(nil) installed %T, want monotonicClock", s.Clock())
	}
}

func TestMonotonicClockNonDecreasing(t *testing.T) {
	c := NewMonotonicClock()
	a := c.NowMillis()
	b := c.NowMillis()
	if a < 0 || b < a {
		t.Errorf("readings %d, %d should be non-negative and non-decreasing", a, b)
	}
}

func TestManualClock(t *testing.T) {
	var c ManualClock
	c.Set(100)
	c.Advance(25)
	if c.NowMillis() != 125 {
		t.Errorf("NowMillis = %d, want 125", c.NowMillis())
	}
}

func TestElementAt(t *testing.T) {
	s, _ := newTestSurface()
	el := NewElement("el", 50, 50)
	el.X = 100
	s.Root().AddChild(el)
	s.Update()

	if got := s.ElementAt(120, 20); got != el {
		t.Errorf("ElementAt(120,20) = %v, want el", got)
	}
	if got := s.ElementAt(10, 10); got != nil {
		t.Errorf("ElementAt(10,10) = %v, want nil", got)
	}
}

func TestUpdate_MeasuresAfterInput(t *testing.T) {
	s, _ := newTestSurface()
	btn := NewElement("btn", 50, 50)
	panel := NewElement("panel", 100, 100)
	panel.X = 5000
	s.Root().AddChild(btn)
	s.Root().AddChild(panel)

	// Clicking the button slides the panel into view within the same tick.
	btn.AddEventListener(MouseDown, func(*PointerEvent) { panel.SetPosition(200, 0) })
	tr, err := s.NewVisibilityTracker(panel, VisibilityOptions{})
	if err != nil {
		t.Fatal(err)
	}

	s.InjectMouseDown(10, 10)
	s.Update()
	if !tr.IsVisible() {
		t.Error("observers should see positions changed by this tick's listeners")
	}
}

func TestEntityStore_Unset(t *testing.T) {
	s, clk := newTestSurface()
	el := NewElement("el", 10, 10)
	el.EntityID = 1
	s.Root().AddChild(el)
	s.NewGestureRecognizer(el, GestureConfig{}, nil)

	s.Dispatch(PointerEvent{Type: MouseDown, Target: el})
	clk.Set(5)
	s.Dispatch(PointerEvent{Type: MouseUp})
}

func TestEventTypeStrings(t *testing.T) {
	for typ, want := range map[EventType]string{
		EventSwipe:   "swipe",
		EventVisible: "visible",
		EventExit:    "exit",
		EventType(9): "unknown",
	} {
		if got := typ.String(); got != want {
			t.Errorf("EventType(%d).String() = %q, want %q", typ, got, want)
		}
	}
	if SourceTouch.String() != "touch" || SourceMouse.String() != "mouse" {
		t.Error("InputSource strings wrong")
	}
	if AxisX.String() != "x" || AxisY.String() != "y" {
		t.Error("Axis strings wrong")
	}
}
