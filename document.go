package bango

// Document is the surface-wide event target. Listeners registered here see
// every dispatched event after it bubbles out of the element tree, including
// events over empty space.
type Document struct {
	listeners listenerRegistry

	// selectionLocks counts outstanding text-selection suppressions.
	selectionLocks int
}

func newDocument() *Document {
	return &Document{}
}

// AddEventListener registers fn for events of type t anywhere on the surface.
func (d *Document) AddEventListener(t PointerEventType, fn func(*PointerEvent)) CallbackHandle {
	return d.listeners.add(t, fn)
}

// ListenerCount returns the number of document listeners registered for t.
func (d *Document) ListenerCount(t PointerEventType) int {
	return d.listeners.count(t)
}

// TextSelectionEnabled reports whether text selection is currently allowed.
// Text widgets drawn by the caller should check this before starting a
// selection; it is false while a mouse drag is in progress.
func (d *Document) TextSelectionEnabled() bool {
	return d.selectionLocks == 0
}

// SuppressTextSelection disables text selection until the returned release
// function is called. Release is idempotent.
func (d *Document) SuppressTextSelection() (release func()) {
	d.selectionLocks++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		d.selectionLocks--
	}
}
