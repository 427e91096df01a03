package bango

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Per-pointer state ---

type mouseState struct {
	down      bool
	button    MouseButton // button captured at press time
	lastX     float64
	lastY     float64
	hasPos    bool
	synthetic bool // press came from the inject queue; polling leaves it alone
}

// activeTouch is a touch point currently on the surface. Touch events after
// touchstart are targeted at the element the touch began on.
type activeTouch struct {
	Touch
	target    *Element
	synthetic bool
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processInput is called from Surface.Update to handle all mouse and touch
// input. Injected events take precedence; when one is consumed, real input is
// skipped for the tick.
func (s *Surface) processInput() {
	var mods KeyModifiers
	if !s.headless {
		mods = readModifiers()
	}
	if s.processInjectedInput(mods) {
		return
	}
	if s.headless {
		return
	}
	s.pollMouse(mods)
	s.pollTouches(mods)
}

// pollMouse reads the Ebitengine cursor and button state.
func (s *Surface) pollMouse(mods KeyModifiers) {
	if s.mouse.synthetic {
		return
	}
	mx, my := ebiten.CursorPosition()

	// Detect which button is pressed. If the mouse is already down, the
	// stored button is reported to avoid changing mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processMouse(float64(mx), float64(my), pressed, button, mods)
}

// pollTouches reads the Ebitengine touch list. Touches that disappeared since
// the last tick end at their last known position.
func (s *Surface) pollTouches(mods KeyModifiers) {
	ids := ebiten.AppendTouchIDs(nil)
	clear(s.touchSeen)
	for _, tid := range ids {
		id := int(tid)
		s.touchSeen[id] = true
		tx, ty := ebiten.TouchPosition(tid)
		s.processTouch(id, float64(tx), float64(ty), true, false, mods)
	}

	s.pollTouchIDs = s.pollTouchIDs[:0]
	for _, t := range s.touches {
		if !t.synthetic && !s.touchSeen[t.ID] {
			s.pollTouchIDs = append(s.pollTouchIDs, t.ID)
		}
	}
	for _, id := range s.pollTouchIDs {
		if i := s.touchIndex(id); i >= 0 {
			t := s.touches[i]
			s.processTouch(id, t.ClientX, t.ClientY, false, false, mods)
		}
	}
}

// processMouse runs the mouse state machine for one sample in screen space.
// A position change dispatches mousemove before any press/release transition.
func (s *Surface) processMouse(sx, sy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ms := &s.mouse
	wx, wy := s.screenToWorld(sx, sy)

	if ms.hasPos && (sx != ms.lastX || sy != ms.lastY) {
		b := button
		if ms.down {
			b = ms.button
		}
		s.dispatchMouse(MouseMove, sx, sy, wx, wy, b, mods)
	}
	ms.lastX, ms.lastY, ms.hasPos = sx, sy, true

	if pressed && !ms.down {
		ms.down = true
		ms.button = button
		s.dispatchMouse(MouseDown, sx, sy, wx, wy, button, mods)
	} else if !pressed && ms.down {
		ms.down = false
		s.dispatchMouse(MouseUp, sx, sy, wx, wy, ms.button, mods)
	}
}

func (s *Surface) dispatchMouse(t PointerEventType, sx, sy, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ev := PointerEvent{
		Type:      t,
		Target:    s.hitTest(wx, wy),
		ClientX:   sx,
		ClientY:   sy,
		WorldX:    wx,
		WorldY:    wy,
		Button:    button,
		Modifiers: mods,
		Timestamp: s.clock.NowMillis(),
	}
	dispatchEvent(s.doc, &ev)
}

func (s *Surface) touchIndex(id int) int {
	for i := range s.touches {
		if s.touches[i].ID == id {
			return i
		}
	}
	return -1
}

// processTouch runs the touch state machine for one touch point.
func (s *Surface) processTouch(id int, sx, sy float64, pressed, synthetic bool, mods KeyModifiers) {
	idx := s.touchIndex(id)
	wx, wy := s.screenToWorld(sx, sy)

	switch {
	case pressed && idx < 0:
		t := activeTouch{
			Touch:     Touch{ID: id, ClientX: sx, ClientY: sy},
			target:    s.hitTest(wx, wy),
			synthetic: synthetic,
		}
		s.touches = append(s.touches, t)
		s.dispatchTouch(TouchStart, t, wx, wy, mods)
	case pressed:
		t := &s.touches[idx]
		if t.ClientX == sx && t.ClientY == sy {
			return
		}
		t.ClientX, t.ClientY = sx, sy
		s.dispatchTouch(TouchMove, *t, wx, wy, mods)
	case idx >= 0:
		t := s.touches[idx]
		t.ClientX, t.ClientY = sx, sy
		copy(s.touches[idx:], s.touches[idx+1:])
		s.touches[len(s.touches)-1] = activeTouch{}
		s.touches = s.touches[:len(s.touches)-1]
		s.dispatchTouch(TouchEnd, t, wx, wy, mods)
	}
}

func (s *Surface) dispatchTouch(typ PointerEventType, changed activeTouch, wx, wy float64, mods KeyModifiers) {
	target := changed.target
	if target != nil && target.disposed {
		target = nil
	}
	touches := make([]Touch, len(s.touches))
	for i := range s.touches {
		touches[i] = s.touches[i].Touch
	}
	ev := PointerEvent{
		Type:           typ,
		Target:         target,
		ClientX:        changed.ClientX,
		ClientY:        changed.ClientY,
		WorldX:         wx,
		WorldY:         wy,
		Button:         MouseButtonLeft,
		Modifiers:      mods,
		Touches:        touches,
		ChangedTouches: []Touch{changed.Touch},
		Timestamp:      s.clock.NowMillis(),
	}
	dispatchEvent(s.doc, &ev)
}
