package bango

import "math"

// Camera maps between world space and a screen-space viewport. The primary
// camera (the first one added to a Surface) converts pointer coordinates and
// provides the implicit root for intersection observation.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera covers.
	Viewport Rect

	// BoundsEnabled clamps the camera position so the visible area stays
	// within Bounds when ClampToBounds is called.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to.
	Bounds Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	// inputs of the cached matrices
	cachedX, cachedY, cachedZoom, cachedRot float64
	cachedViewport                          Rect
}

// newCamera creates a Camera with default values and the given viewport.
// The camera starts centered on the viewport so world and screen coincide.
func newCamera(viewport Rect) *Camera {
	return &Camera{
		X:        viewport.X + viewport.Width/2,
		Y:        viewport.Y + viewport.Height/2,
		Zoom:     1.0,
		Viewport: viewport,
		dirty:    true,
	}
}

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// ClampToBounds immediately clamps the camera position so the visible area
// stays within Bounds. No-op if BoundsEnabled is false.
func (c *Camera) ClampToBounds() {
	if !c.BoundsEnabled {
		return
	}
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)

	minX := c.Bounds.X + halfW
	maxX := c.Bounds.X + c.Bounds.Width - halfW
	minY := c.Bounds.Y + halfH
	maxY := c.Bounds.Y + c.Bounds.Height - halfH

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.X = math.Max(minX, math.Min(c.X, maxX))
	}
	if minY > maxY {
		c.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Y = math.Max(minY, math.Min(c.Y, maxY))
	}
}

// computeViewMatrix recomputes the cached view matrix when any camera field
// changed since the last call.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty && c.X == c.cachedX && c.Y == c.cachedY && c.Zoom == c.cachedZoom &&
		c.Rotation == c.cachedRot && c.Viewport == c.cachedViewport {
		return c.viewMatrix
	}
	c.dirty = false
	c.cachedX, c.cachedY, c.cachedZoom, c.cachedRot = c.X, c.Y, c.Zoom, c.Rotation
	c.cachedViewport = c.Viewport

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	cos := math.Cos(-c.Rotation)
	sin := math.Sin(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	c.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's visible
// area in world space.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	x0, y0 := transformPoint(inv, vx, vy)
	x1, y1 := transformPoint(inv, vr, vy)
	x2, y2 := transformPoint(inv, vr, vb)
	x3, y3 := transformPoint(inv, vx, vb)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// MarkDirty forces a recomputation of the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}
