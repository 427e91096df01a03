package bango

import "math"

// Vec2 is a 2D vector used for positions, offsets and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Intersection returns the overlapping region of r and other and whether the
// two touch at all. Edge-adjacent rectangles return a zero-area rect and true.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	if !r.Intersects(other) {
		return Rect{}, false
	}
	x0 := math.Max(r.X, other.X)
	y0 := math.Max(r.Y, other.Y)
	x1 := math.Min(r.X+r.Width, other.X+other.Width)
	y1 := math.Min(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

// Area returns Width*Height.
func (r Rect) Area() float64 {
	return r.Width * r.Height
}

// Expand grows the rectangle outward by the given edge offsets. Negative
// values shrink it.
func (r Rect) Expand(top, right, bottom, left float64) Rect {
	return Rect{
		X:      r.X - left,
		Y:      r.Y - top,
		Width:  r.Width + left + right,
		Height: r.Height + top + bottom,
	}
}

// EventType identifies a kind of recognized interaction event forwarded to an
// EntityStore.
type EventType uint8

const (
	EventSwipe   EventType = iota // a drag session ended; carries distance and velocity
	EventVisible                  // an observed element reported intersecting
	EventExit                     // an observed element reported not intersecting
)

// String returns the lower-case event name.
func (e EventType) String() string {
	switch e {
	case EventSwipe:
		return "swipe"
	case EventVisible:
		return "visible"
	case EventExit:
		return "exit"
	default:
		return "unknown"
	}
}

// PointerEventType identifies a raw input event dispatched through the
// element tree.
type PointerEventType uint8

const (
	MouseDown   PointerEventType = iota // a mouse button was pressed
	MouseMove                           // the mouse moved
	MouseUp                             // a mouse button was released
	TouchStart                          // a finger touched the surface
	TouchMove                           // a touching finger moved
	TouchEnd                            // a finger was lifted
	TouchCancel                         // the touch was interrupted by the system
	numPointerEventTypes
)

// String returns the DOM-style event name ("mousedown", "touchend", ...).
func (t PointerEventType) String() string {
	switch t {
	case MouseDown:
		return "mousedown"
	case MouseMove:
		return "mousemove"
	case MouseUp:
		return "mouseup"
	case TouchStart:
		return "touchstart"
	case TouchMove:
		return "touchmove"
	case TouchEnd:
		return "touchend"
	case TouchCancel:
		return "touchcancel"
	default:
		return "unknown"
	}
}

// IsTouch reports whether t belongs to the touch family.
func (t PointerEventType) IsTouch() bool {
	return t >= TouchStart && t <= TouchCancel
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// InputSource records which input modality started a drag session.
type InputSource uint8

const (
	SourceMouse InputSource = iota
	SourceTouch
)

// String returns "mouse" or "touch".
func (s InputSource) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

// Axis selects the coordinate a GestureRecognizer tracks.
type Axis uint8

const (
	AxisX Axis = iota // horizontal; positive distance = rightward
	AxisY             // vertical; positive distance = downward
)

// String returns "x" or "y".
func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}
