package bango

// EntityStore is the interface for optional ECS integration.
// When set on a Surface, recognized swipes and visibility changes of elements
// with a non-zero EntityID are forwarded to the ECS.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries recognized interaction data for the ECS bridge.
type InteractionEvent struct {
	Type     EventType
	EntityID uint32
	// Time is the surface clock reading in ms.
	Time int64
	// Swipe fields (valid for EventSwipe)
	Distance float64
	Velocity float64
	Start    float64
	End      float64
	Duration int64
	Axis     Axis
	Source   InputSource
	// Visibility fields (valid for EventVisible, EventExit)
	IsIntersecting    bool
	IntersectionRatio float64
}

// Surface is the top-level object that owns the element tree, the Document,
// cameras, the clock, input state and intersection observers.
type Surface struct {
	root  *Element
	doc   *Document
	clock Clock
	store EntityStore
	debug bool

	// Width and Height are the screen size used as the implicit
	// intersection root when no camera exists.
	width, height float64

	// headless disables Ebitengine input polling; only injected and
	// dispatched events are processed.
	headless bool

	cameras   []*Camera
	observers []*IntersectionObserver

	// Input state
	hitBuf       []*Element
	mouse        mouseState
	touches      []activeTouch
	touchSeen    map[int]bool
	pollTouchIDs []int
	injectQueue  []syntheticEvent
	runner       *Runner
}

// NewSurface creates a surface of the given screen size with a pre-created
// root container and a monotonic clock.
func NewSurface(width, height float64) *Surface {
	root := NewContainer("root")
	return &Surface{
		root:      root,
		doc:       newDocument(),
		clock:     NewMonotonicClock(),
		width:     width,
		height:    height,
		touchSeen: make(map[int]bool),
	}
}

// NewHeadlessSurface creates a surface that never polls Ebitengine for input.
// Events enter only through Dispatch and the Inject methods.
func NewHeadlessSurface(width, height float64) *Surface {
	s := NewSurface(width, height)
	s.headless = true
	return s
}

// Root returns the surface's root container element.
func (s *Surface) Root() *Element {
	return s.root
}

// Document returns the surface-wide event target.
func (s *Surface) Document() *Document {
	return s.doc
}

// Clock returns the surface clock.
func (s *Surface) Clock() Clock {
	return s.clock
}

// SetClock replaces the surface clock. Intended for tests and script replay.
func (s *Surface) SetClock(c Clock) {
	if c == nil {
		c = NewMonotonicClock()
	}
	s.clock = c
}

// Size returns the surface screen size.
func (s *Surface) Size() (w, h float64) {
	return s.width, s.height
}

// SetSize updates the surface screen size (e.g. from ebiten.Game.Layout).
func (s *Surface) SetSize(w, h float64) {
	s.width = w
	s.height = h
}

// Update refreshes world transforms, advances the script runner, processes
// input and delivers intersection notifications. Call once per tick.
func (s *Surface) Update() {
	updateWorldTransform(s.root, identityTransform, false)

	if s.runner != nil {
		s.runner.step(s)
	}
	s.processInput()

	// Listeners may have moved elements; refresh before measuring.
	updateWorldTransform(s.root, identityTransform, false)
	s.updateObservers()
}

// Dispatch stamps ev with the current clock reading and world coordinates
// and dispatches it synchronously to ev.Target, its ancestors and the
// Document.
func (s *Surface) Dispatch(ev PointerEvent) {
	ev.Timestamp = s.clock.NowMillis()
	ev.WorldX, ev.WorldY = s.screenToWorld(ev.ClientX, ev.ClientY)
	ev.stopped = false
	dispatchEvent(s.doc, &ev)
}

// ElementAt returns the topmost interactable element under the screen point
// (sx, sy), using transforms as of the last Update.
func (s *Surface) ElementAt(sx, sy float64) *Element {
	wx, wy := s.screenToWorld(sx, sy)
	return s.hitTest(wx, wy)
}

// NewCamera creates a camera with the given viewport and adds it to the surface.
func (s *Surface) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the surface.
func (s *Surface) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			s.cameras = append(s.cameras[:i], s.cameras[i+1:]...)
			return
		}
	}
}

// Cameras returns the surface's camera list. The returned slice MUST NOT be mutated.
func (s *Surface) Cameras() []*Camera {
	return s.cameras
}

// primaryCamera returns the first camera or nil.
func (s *Surface) primaryCamera() *Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// screenToWorld converts screen coordinates to world coordinates using the primary camera.
func (s *Surface) screenToWorld(sx, sy float64) (float64, float64) {
	if cam := s.primaryCamera(); cam != nil {
		return cam.ScreenToWorld(sx, sy)
	}
	return sx, sy
}

// viewportBounds returns the world-space rect visible on screen: the primary
// camera's visible bounds, or the surface size when there is no camera.
func (s *Surface) viewportBounds() Rect {
	if cam := s.primaryCamera(); cam != nil {
		return cam.VisibleBounds()
	}
	return Rect{Width: s.width, Height: s.height}
}

// SetEntityStore sets the optional ECS bridge.
func (s *Surface) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-element
// tree operations panic, tree warnings are printed, and gesture and
// visibility activity is logged to stderr.
func (s *Surface) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// --- ECS bridge ---

func (s *Surface) emitSwipe(sw SwipeEvent) {
	if s.store == nil || sw.Element == nil || sw.Element.EntityID == 0 {
		return
	}
	s.store.EmitEvent(InteractionEvent{
		Type:     EventSwipe,
		EntityID: sw.Element.EntityID,
		Time:     sw.EndTime,
		Distance: sw.Distance,
		Velocity: sw.Velocity,
		Start:    sw.Start,
		End:      sw.End,
		Duration: sw.Duration(),
		Axis:     sw.Axis,
		Source:   sw.Source,
	})
}

func (s *Surface) emitVisibility(entry IntersectionEntry) {
	if s.store == nil || entry.Target == nil || entry.Target.EntityID == 0 {
		return
	}
	t := EventExit
	if entry.IsIntersecting {
		t = EventVisible
	}
	s.store.EmitEvent(InteractionEvent{
		Type:              t,
		EntityID:          entry.Target.EntityID,
		Time:              entry.Time,
		IsIntersecting:    entry.IsIntersecting,
		IntersectionRatio: entry.IntersectionRatio,
	})
}
