package bango

import (
	"math"

	"github.com/google/uuid"
)

// --- Drag session state machine ---

// DragSession is the in-flight drag tracked by a GestureRecognizer. The zero
// value is the idle state.
type DragSession struct {
	ID             uuid.UUID
	StartPosition  float64
	StartTimestamp int64 // ms
	Source         InputSource
	Active         bool
}

type dragInputKind uint8

const (
	dragStart dragInputKind = iota
	dragMove
	dragEnd
)

// dragInput is one normalized pointer sample fed into stepDrag.
type dragInput struct {
	kind      dragInputKind
	position  float64
	timestamp int64
	source    InputSource
	sessionID uuid.UUID // identity given to a session opened by dragStart
}

// dragEffects are the side effects a transition asks the recognizer to perform.
type dragEffects struct {
	swipe          SwipeEvent
	emitSwipe      bool
	acquireCapture bool
}

// stepDrag is the recognizer's transition function:
//
//	idle     + start -> dragging (record position and time)
//	dragging + start -> dragging (restart; the latest start wins)
//	dragging + move  -> dragging (unchanged)
//	dragging + end   -> idle     (emit swipe)
//	idle     + move  -> idle
//	idle     + end   -> idle
//
// Mouse starts additionally request the document capture.
func stepDrag(s DragSession, in dragInput) (DragSession, dragEffects) {
	var fx dragEffects
	switch in.kind {
	case dragStart:
		s = DragSession{
			ID:             in.sessionID,
			StartPosition:  in.position,
			StartTimestamp: in.timestamp,
			Source:         in.source,
			Active:         true,
		}
		fx.acquireCapture = in.source == SourceMouse
	case dragEnd:
		if !s.Active {
			return s, fx
		}
		distance := in.position - s.StartPosition
		elapsed := in.timestamp - s.StartTimestamp
		fx.swipe = SwipeEvent{
			Distance:  distance,
			Velocity:  swipeVelocity(distance, elapsed),
			Start:     s.StartPosition,
			End:       in.position,
			StartTime: s.StartTimestamp,
			EndTime:   in.timestamp,
			Source:    s.Source,
			SessionID: s.ID,
		}
		fx.emitSwipe = true
		s = DragSession{}
	}
	return s, fx
}

// swipeVelocity returns |distance| / elapsedMillis in units per millisecond.
// A zero elapsed time yields +Inf, including for a zero distance.
func swipeVelocity(distance float64, elapsedMillis int64) float64 {
	if elapsedMillis == 0 {
		return math.Inf(1)
	}
	return math.Abs(distance) / float64(elapsedMillis)
}

// --- Swipe events ---

// SwipeEvent is emitted once per completed drag session.
type SwipeEvent struct {
	// Distance is End-Start along the tracked axis; positive is rightward
	// (AxisX) or downward (AxisY).
	Distance float64
	// Velocity is |Distance| divided by the drag duration in ms. It is +Inf
	// when start and end share a timestamp; callers should clamp or ignore it.
	Velocity float64

	Start, End         float64
	StartTime, EndTime int64
	Axis               Axis
	Source             InputSource
	Element            *Element
	SessionID          uuid.UUID
}

// Duration returns EndTime-StartTime in milliseconds.
func (e SwipeEvent) Duration() int64 {
	return e.EndTime - e.StartTime
}

// --- Recognizer ---

// GestureConfig configures a GestureRecognizer. The zero value tracks the
// horizontal axis.
type GestureConfig struct {
	Axis Axis
}

// dragCapture is the document-scoped resource a mouse drag holds: text
// selection suppression plus document mousemove/mouseup listeners. Released
// at most once.
type dragCapture struct {
	move, up         CallbackHandle
	releaseSelection func()
	released         bool
}

func (c *dragCapture) release() {
	if c == nil || c.released {
		return
	}
	c.released = true
	c.move.Remove()
	c.up.Remove()
	c.releaseSelection()
}

// GestureRecognizer turns mouse and touch sequences on one element into
// SwipeEvents. Create it with Surface.NewGestureRecognizer.
type GestureRecognizer struct {
	surface *Surface
	el      *Element
	cfg     GestureConfig

	session  DragSession
	capture  *dragCapture
	handlers callbackList[func(SwipeEvent)]

	elementListeners [3]CallbackHandle
	unmountHandle    CallbackHandle
	disposed         bool
}

// NewGestureRecognizer binds touchstart, touchend and mousedown listeners to
// el and calls onSwipe (if non-nil) once per completed drag. A nil el yields
// an inert recognizer. The recognizer is disposed automatically when el is.
func (s *Surface) NewGestureRecognizer(el *Element, cfg GestureConfig, onSwipe func(SwipeEvent)) *GestureRecognizer {
	r := &GestureRecognizer{surface: s, el: el, cfg: cfg}
	if onSwipe != nil {
		r.handlers.add(onSwipe)
	}
	if el == nil || el.disposed {
		return r
	}
	r.elementListeners = [3]CallbackHandle{
		el.AddEventListener(TouchStart, r.onTouchStart),
		el.AddEventListener(TouchEnd, r.onTouchEnd),
		el.AddEventListener(MouseDown, r.onMouseDown),
	}
	r.unmountHandle = el.OnUnmount(r.Dispose)
	return r
}

// OnSwipe registers an additional swipe subscriber.
func (r *GestureRecognizer) OnSwipe(fn func(SwipeEvent)) CallbackHandle {
	if r.disposed || fn == nil {
		return CallbackHandle{}
	}
	return r.handlers.add(fn)
}

// Session returns a copy of the current drag session.
func (r *GestureRecognizer) Session() DragSession {
	return r.session
}

// Dragging reports whether a drag session is active.
func (r *GestureRecognizer) Dragging() bool {
	return r.session.Active
}

// Element returns the bound element, or nil.
func (r *GestureRecognizer) Element() *Element {
	return r.el
}

// Dispose removes the element listeners, releases the document capture
// whether or not a drag is in progress, and drops all subscribers. Safe to
// call more than once.
func (r *GestureRecognizer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	for _, h := range r.elementListeners {
		h.Remove()
	}
	r.unmountHandle.Remove()
	r.releaseCapture()
	r.handlers.clear()
	r.session = DragSession{}
}

// IsDisposed reports whether Dispose has run.
func (r *GestureRecognizer) IsDisposed() bool {
	return r.disposed
}

func (r *GestureRecognizer) position(x, y float64) float64 {
	if r.cfg.Axis == AxisY {
		return y
	}
	return x
}

func (r *GestureRecognizer) onTouchStart(ev *PointerEvent) {
	if len(ev.Touches) == 0 {
		return
	}
	t := ev.Touches[0]
	r.feed(dragStart, r.position(t.ClientX, t.ClientY), ev.Timestamp, SourceTouch)
}

func (r *GestureRecognizer) onTouchEnd(ev *PointerEvent) {
	if len(ev.ChangedTouches) == 0 {
		return
	}
	t := ev.ChangedTouches[0]
	r.feed(dragEnd, r.position(t.ClientX, t.ClientY), ev.Timestamp, SourceTouch)
}

func (r *GestureRecognizer) onMouseDown(ev *PointerEvent) {
	r.feed(dragStart, r.position(ev.ClientX, ev.ClientY), ev.Timestamp, SourceMouse)
}

func (r *GestureRecognizer) onMouseMove(ev *PointerEvent) {
	r.feed(dragMove, r.position(ev.ClientX, ev.ClientY), ev.Timestamp, SourceMouse)
}

func (r *GestureRecognizer) onMouseUp(ev *PointerEvent) {
	r.feed(dragEnd, r.position(ev.ClientX, ev.ClientY), ev.Timestamp, SourceMouse)
	r.releaseCapture()
}

func (r *GestureRecognizer) feed(kind dragInputKind, pos float64, ts int64, src InputSource) {
	if r.disposed {
		return
	}
	in := dragInput{kind: kind, position: pos, timestamp: ts, source: src}
	if kind == dragStart {
		in.sessionID = uuid.New()
	}
	next, fx := stepDrag(r.session, in)
	r.session = next

	if fx.acquireCapture {
		r.acquireCapture()
	}
	if fx.emitSwipe {
		sw := fx.swipe
		sw.Axis = r.cfg.Axis
		sw.Element = r.el
		r.emit(sw)
	}
}

// acquireCapture attaches the document listeners and suppresses text
// selection. No-op while a capture is already held.
func (r *GestureRecognizer) acquireCapture() {
	if r.capture != nil {
		return
	}
	doc := r.surface.doc
	r.capture = &dragCapture{
		move:             doc.AddEventListener(MouseMove, r.onMouseMove),
		up:               doc.AddEventListener(MouseUp, r.onMouseUp),
		releaseSelection: doc.SuppressTextSelection(),
	}
	if r.surface.debug {
		debugf("gesture %s: capture acquired", elementLabel(r.el))
	}
}

func (r *GestureRecognizer) releaseCapture() {
	if r.capture == nil {
		return
	}
	r.capture.release()
	r.capture = nil
	if r.surface.debug {
		debugf("gesture %s: capture released", elementLabel(r.el))
	}
}

func (r *GestureRecognizer) emit(sw SwipeEvent) {
	if r.surface.debug {
		debugf("gesture %s: swipe distance=%.2f velocity=%.4f source=%s",
			elementLabel(r.el), sw.Distance, sw.Velocity, sw.Source)
	}
	r.handlers.each(func(fn func(SwipeEvent)) { fn(sw) })
	r.surface.emitSwipe(sw)
}
