package bango

// Touch is a single touch point carried by a touch event.
type Touch struct {
	ID      int
	ClientX float64
	ClientY float64
}

// PointerEvent is a raw input event dispatched through the element tree and
// then to the Document.
type PointerEvent struct {
	Type PointerEventType
	// Target is the element the event was dispatched to. Nil when the pointer
	// was over empty space; then only Document listeners run.
	Target *Element
	// CurrentTarget is the element whose listeners are running, nil while the
	// Document's listeners run.
	CurrentTarget *Element

	// ClientX and ClientY are screen coordinates.
	ClientX, ClientY float64
	// WorldX and WorldY are ClientX/ClientY converted through the primary camera.
	WorldX, WorldY float64
	Button         MouseButton
	Modifiers      KeyModifiers

	// Touches lists the touch points still on the surface (touch events only).
	Touches []Touch
	// ChangedTouches lists the touch points that changed in this event.
	ChangedTouches []Touch

	// Timestamp is the surface clock reading in milliseconds.
	Timestamp int64

	stopped bool
}

// StopPropagation prevents the event from reaching ancestors and the
// Document. Remaining listeners on the current element still run.
func (ev *PointerEvent) StopPropagation() {
	ev.stopped = true
}

// listenerRegistry holds per-event-type listener lists. Used by Element and
// Document alike.
type listenerRegistry struct {
	byType [numPointerEventTypes]callbackList[func(*PointerEvent)]
}

func (r *listenerRegistry) add(t PointerEventType, fn func(*PointerEvent)) CallbackHandle {
	if t >= numPointerEventTypes || fn == nil {
		return CallbackHandle{}
	}
	return r.byType[t].add(fn)
}

func (r *listenerRegistry) count(t PointerEventType) int {
	if t >= numPointerEventTypes {
		return 0
	}
	return r.byType[t].len()
}

func (r *listenerRegistry) fire(ev *PointerEvent) {
	if ev.Type >= numPointerEventTypes {
		return
	}
	r.byType[ev.Type].each(func(fn func(*PointerEvent)) { fn(ev) })
}

func (r *listenerRegistry) clear() {
	for i := range r.byType {
		r.byType[i].clear()
	}
}

// dispatchEvent runs listeners on the target, its ancestors (bubbling), and
// finally the document, honoring StopPropagation.
func dispatchEvent(doc *Document, ev *PointerEvent) {
	for el := ev.Target; el != nil; el = el.Parent {
		if el.disposed {
			break
		}
		ev.CurrentTarget = el
		el.listeners.fire(ev)
		if ev.stopped {
			ev.CurrentTarget = nil
			return
		}
	}
	ev.CurrentTarget = nil
	if doc != nil {
		doc.listeners.fire(ev)
	}
}
