package bango

import "sort"

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// elementIDCounter is a plain counter; bango is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Element is a node of the interactive surface: a transformed Width x Height
// box that receives pointer events and can be observed for visibility.
type Element struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Size in local units. Used for hit testing (when HitShape is nil) and
	// for intersection observation.
	Width, Height float64

	worldTransform [6]float64
	transformDirty bool

	// Visible=false hides the element and its subtree from hit testing and
	// reports it as not intersecting.
	Visible bool
	// Interactable=false excludes the element and its subtree from hit
	// testing. Defaults to true.
	Interactable bool
	ZIndex       int

	// Hit testing
	HitShape HitShape

	// Metadata
	UserData any
	EntityID uint32

	listeners listenerRegistry
	unmount   callbackList[func()]

	disposed       bool
	childrenSorted bool
	sortedChildren []*Element
}

// NewElement creates an element with the given size.
func NewElement(name string, width, height float64) *Element {
	e := &Element{
		ID:             nextElementID(),
		Name:           name,
		Width:          width,
		Height:         height,
		ScaleX:         1,
		ScaleY:         1,
		Visible:        true,
		Interactable:   true,
		transformDirty: true,
		childrenSorted: true,
		worldTransform: identityTransform,
	}
	return e
}

// NewContainer creates a zero-size grouping element. Containers are not
// hit-testable unless given a HitShape.
func NewContainer(name string) *Element {
	return NewElement(name, 0, 0)
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	if child == nil {
		panic("bango: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(e, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, e) {
		panic("bango: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
	e.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// RemoveChild detaches child from this element without disposing it.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("bango: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.Parent = nil
	e.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// SetZIndex sets the element's ZIndex and marks the parent's children as unsorted.
func (e *Element) SetZIndex(z int) {
	if e.ZIndex == z {
		return
	}
	e.ZIndex = z
	if e.Parent != nil {
		e.Parent.childrenSorted = false
	}
}

// Contains reports whether other is e or a descendant of e.
func (e *Element) Contains(other *Element) bool {
	return other != nil && isAncestor(e, other)
}

// --- Lifecycle ---

// OnUnmount registers fn to run when the element is disposed. Hooks run in
// registration order, children before parents.
func (e *Element) OnUnmount(fn func()) CallbackHandle {
	if e.disposed {
		return CallbackHandle{}
	}
	return e.unmount.add(fn)
}

// Dispose removes this element from its parent, runs the unmount hooks of the
// whole subtree, drops every listener and marks the subtree as disposed.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.unmount.each(func(fn func()) { fn() })
	e.unmount.clear()
	e.listeners.clear()
	e.disposed = true
	e.ID = 0
	e.children = nil
	e.sortedChildren = nil
	e.Parent = nil
	e.HitShape = nil
	e.UserData = nil
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Events ---

// AddEventListener registers fn for events of type t targeting this element
// or (through bubbling) one of its descendants.
func (e *Element) AddEventListener(t PointerEventType, fn func(*PointerEvent)) CallbackHandle {
	if e.disposed {
		return CallbackHandle{}
	}
	return e.listeners.add(t, fn)
}

// ListenerCount returns the number of listeners registered for t.
func (e *Element) ListenerCount(t PointerEventType) int {
	return e.listeners.count(t)
}

// --- Helpers ---

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// effectivelyVisible reports whether e and every ancestor are Visible.
func effectivelyVisible(e *Element) bool {
	for p := e; p != nil; p = p.Parent {
		if !p.Visible {
			return false
		}
	}
	return true
}

// removeChildByPtr removes child from e.children without clearing child.Parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on element and all its descendants.
func markSubtreeDirty(e *Element) {
	e.transformDirty = true
	for _, child := range e.children {
		markSubtreeDirty(child)
	}
}

// sortedChildrenOf returns e's children in painter order (stable by ZIndex).
func sortedChildrenOf(e *Element) []*Element {
	if e.childrenSorted {
		if e.sortedChildren != nil {
			return e.sortedChildren
		}
		return e.children
	}
	e.sortedChildren = append(e.sortedChildren[:0], e.children...)
	sort.SliceStable(e.sortedChildren, func(i, j int) bool {
		return e.sortedChildren[i].ZIndex < e.sortedChildren[j].ZIndex
	})
	e.childrenSorted = true
	return e.sortedChildren
}
