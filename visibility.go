package bango

// defaultVisibilityThreshold is the ratio used when VisibilityOptions.Threshold is nil.
const defaultVisibilityThreshold = 0.1

// VisibilityOptions configures a VisibilityTracker.
type VisibilityOptions struct {
	// Root is the containing viewport. Nil means the surface viewport.
	Root *Element
	// RootMargin grows or shrinks the root bounds. Empty = "0px".
	RootMargin string
	// Threshold lists the intersection ratios that trigger a notification.
	// Nil = [0.1].
	Threshold []float64
	// OnVisible fires on every notification reporting the element as intersecting.
	OnVisible func()
	// OnExit fires on every notification reporting it as not intersecting.
	OnExit func()
	// PersistAfterLoad stops observing after the first visible notification,
	// freezing IsVisible at true.
	PersistAfterLoad bool
}

// VisibilityTracker reports whether one element is in view. Notifications are
// level-triggered: callbacks fire for every delivered entry, not only on
// changes of IsVisible. Create it with Surface.NewVisibilityTracker.
type VisibilityTracker struct {
	surface  *Surface
	el       *Element
	observer *IntersectionObserver
	persist  bool

	isVisible bool
	onVisible callbackList[func()]
	onExit    callbackList[func()]

	unmountHandle CallbackHandle
	disposed      bool
}

// NewVisibilityTracker creates a tracker for el. Observation starts
// immediately when el is non-nil; a nil el never starts observing. The first
// notification is delivered on the next Update. The tracker is disposed
// automatically when el is.
func (s *Surface) NewVisibilityTracker(el *Element, opts VisibilityOptions) (*VisibilityTracker, error) {
	threshold := opts.Threshold
	if threshold == nil {
		threshold = []float64{defaultVisibilityThreshold}
	}
	t := &VisibilityTracker{surface: s, el: el, persist: opts.PersistAfterLoad}
	obs, err := NewIntersectionObserver(s, t.handleEntries, IntersectionOptions{
		Root:       opts.Root,
		RootMargin: opts.RootMargin,
		Threshold:  threshold,
	})
	if err != nil {
		return nil, err
	}
	t.observer = obs
	if opts.OnVisible != nil {
		t.onVisible.add(opts.OnVisible)
	}
	if opts.OnExit != nil {
		t.onExit.add(opts.OnExit)
	}

	if el != nil && !el.disposed {
		obs.Observe(el)
		t.unmountHandle = el.OnUnmount(t.Dispose)
	}
	return t, nil
}

// IsVisible reports the intersecting state from the most recent notification.
func (t *VisibilityTracker) IsVisible() bool {
	return t.isVisible
}

// Observing reports whether the tracker is still receiving notifications.
func (t *VisibilityTracker) Observing() bool {
	return !t.disposed && t.el != nil && t.observer.Observing(t.el)
}

// OnVisible registers an additional visible subscriber.
func (t *VisibilityTracker) OnVisible(fn func()) CallbackHandle {
	if t.disposed || fn == nil {
		return CallbackHandle{}
	}
	return t.onVisible.add(fn)
}

// OnExit registers an additional exit subscriber.
func (t *VisibilityTracker) OnExit(fn func()) CallbackHandle {
	if t.disposed || fn == nil {
		return CallbackHandle{}
	}
	return t.onExit.add(fn)
}

// Element returns the tracked element, or nil.
func (t *VisibilityTracker) Element() *Element {
	return t.el
}

// Dispose disconnects the observer and drops all subscribers. Safe to call
// more than once.
func (t *VisibilityTracker) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true
	t.observer.Disconnect()
	t.unmountHandle.Remove()
	t.onVisible.clear()
	t.onExit.clear()
}

func (t *VisibilityTracker) handleEntries(entries []IntersectionEntry, obs *IntersectionObserver) {
	for _, entry := range entries {
		if t.disposed {
			return
		}
		t.isVisible = entry.IsIntersecting
		if entry.IsIntersecting {
			t.onVisible.each(func(fn func()) { fn() })
			if t.persist {
				obs.Unobserve(entry.Target)
			}
		} else {
			t.onExit.each(func(fn func()) { fn() })
		}
		if !t.disposed {
			t.surface.emitVisibility(entry)
		}
	}
}
