package bango

// syntheticEvent represents a single injected input sample. Screen
// coordinates are used and converted to world coordinates via the primary
// camera, identical to real input.
type syntheticEvent struct {
	touch            bool
	touchID          int
	screenX, screenY float64
	pressed          bool
	button           MouseButton
}

// InjectMouseDown queues a left-button press at the given screen coordinates.
// The event is consumed on the next Update.
func (s *Surface) InjectMouseDown(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMouseMove queues a mouse move to the given screen coordinates. The
// button state carries over from the previous injected event, so a move
// between InjectMouseDown and InjectMouseUp is a drag.
func (s *Surface) InjectMouseMove(x, y float64) {
	pressed := s.mouse.down
	for i := len(s.injectQueue) - 1; i >= 0; i-- {
		if !s.injectQueue[i].touch {
			pressed = s.injectQueue[i].pressed
			break
		}
	}
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: pressed,
		button:  MouseButtonLeft,
	})
}

// InjectMouseUp queues a mouse release at the given screen coordinates.
func (s *Surface) InjectMouseUp(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		screenX: x, screenY: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two ticks.
func (s *Surface) InjectClick(x, y float64) {
	s.InjectMouseDown(x, y)
	s.InjectMouseUp(x, y)
}

// InjectSwipe queues a full mouse drag: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate ticks, and release at
// (toX, toY). The sequence consumes `frames` ticks; minimum is 2.
func (s *Surface) InjectSwipe(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectMouseDown(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMouseMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectMouseUp(toX, toY)
}

// InjectTouchStart queues a touch with the given id landing at (x, y).
func (s *Surface) InjectTouchStart(id int, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		touch: true, touchID: id,
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectTouchMove queues a move of touch id to (x, y).
func (s *Surface) InjectTouchMove(id int, x, y float64) {
	s.InjectTouchStart(id, x, y)
}

// InjectTouchEnd queues the lift of touch id at (x, y).
func (s *Surface) InjectTouchEnd(id int, x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		touch: true, touchID: id,
		screenX: x, screenY: y,
		pressed: false,
	})
}

// InjectTouchSwipe is the touch equivalent of InjectSwipe.
func (s *Surface) InjectTouchSwipe(id int, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectTouchStart(id, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectTouchMove(id, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectTouchEnd(id, toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Surface) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the mouse or touch state machine. Returns true if an event was
// consumed (real input should be skipped).
func (s *Surface) processInjectedInput(mods KeyModifiers) bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.touch {
		s.processTouch(evt.touchID, evt.screenX, evt.screenY, evt.pressed, true, mods)
		return true
	}
	s.mouse.synthetic = evt.pressed
	s.processMouse(evt.screenX, evt.screenY, evt.pressed, evt.button, mods)
	return true
}
