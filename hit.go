package bango

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]

		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Hit testing ---

// elementContainsLocal tests whether (lx, ly) falls inside an element's hit
// region. Uses HitShape if set; otherwise the Width x Height box. Zero-size
// elements with no HitShape are not hit-testable.
func elementContainsLocal(e *Element, lx, ly float64) bool {
	if e.HitShape != nil {
		return e.HitShape.Contains(lx, ly)
	}
	if e.Width == 0 && e.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= e.Width && ly >= 0 && ly <= e.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending hit-testable elements to buf. Skips Visible=false or
// Interactable=false subtrees.
func collectInteractable(e *Element, buf []*Element) []*Element {
	if !e.Visible || !e.Interactable {
		return buf
	}
	if e.HitShape != nil || e.Width != 0 || e.Height != 0 {
		buf = append(buf, e)
	}
	for _, child := range sortedChildrenOf(e) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable element at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Surface) hitTest(worldX, worldY float64) *Element {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost element first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		e := s.hitBuf[i]
		lx, ly := e.WorldToLocal(worldX, worldY)
		if elementContainsLocal(e, lx, ly) {
			return e
		}
	}
	return nil
}
