package bango

import (
	"reflect"
	"testing"
)

func TestNewElementDefaults(t *testing.T) {
	e := NewElement("card", 30, 20)
	if e.Width != 30 || e.Height != 20 {
		t.Errorf("size = %vx%v, want 30x20", e.Width, e.Height)
	}
	if e.ScaleX != 1 || e.ScaleY != 1 {
		t.Error("scale should default to 1")
	}
	if !e.Visible || !e.Interactable {
		t.Error("elements should default to visible and interactable")
	}
	if e.ID == 0 {
		t.Error("ID should be assigned")
	}
}

func TestUniqueIDs(t *testing.T) {
	seen := map[uint32]bool{}
	for i := 0; i < 100; i++ {
		e := NewContainer("")
		if seen[e.ID] {
			t.Fatalf("duplicate ID %d", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestAddChildReparent(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewElement("c", 1, 1)

	a.AddChild(c)
	b.AddChild(c)

	if c.Parent != b || a.NumChildren() != 0 || b.NumChildren() != 1 {
		t.Error("reparenting should move the child")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil", func() { NewContainer("p").AddChild(nil) }},
		{"self", func() {
			p := NewContainer("p")
			p.AddChild(p)
		}},
		{"cycle", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"wrong parent", func() {
			a := NewContainer("a")
			NewContainer("b").RemoveChild(a)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveFromParent(t *testing.T) {
	p := NewContainer("p")
	c := NewElement("c", 1, 1)
	p.AddChild(c)
	c.RemoveFromParent()
	if c.Parent != nil || p.NumChildren() != 0 {
		t.Error("RemoveFromParent should detach")
	}
	c.RemoveFromParent() // no-op
}

func TestContains(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewElement("c", 1, 1)
	a.AddChild(b)
	b.AddChild(c)

	if !a.Contains(c) || !a.Contains(a) || c.Contains(a) || a.Contains(nil) {
		t.Error("Contains should report self and descendants only")
	}
}

func TestDirtyPropagationOnAddChild(t *testing.T) {
	p := NewContainer("p")
	c := NewContainer("c")
	gc := NewElement("gc", 1, 1)
	c.AddChild(gc)
	updateWorldTransform(c, identityTransform, false)

	p.AddChild(c)
	if !c.transformDirty || !gc.transformDirty {
		t.Error("AddChild should mark the subtree dirty")
	}
}

func TestDispose(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewElement("child", 1, 1)
	root.AddChild(parent)
	parent.AddChild(child)

	var order []string
	parent.OnUnmount(func() { order = append(order, "parent-1") })
	parent.OnUnmount(func() { order = append(order, "parent-2") })
	child.OnUnmount(func() { order = append(order, "child") })
	parent.AddEventListener(MouseDown, func(*PointerEvent) {})

	parent.Dispose()

	if want := []string{"child", "parent-1", "parent-2"}; !reflect.DeepEqual(order, want) {
		t.Errorf("unmount order = %v, want %v", order, want)
	}
	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("whole subtree should be disposed")
	}
	if root.NumChildren() != 0 {
		t.Error("disposed element should be removed from its parent")
	}
	if parent.ListenerCount(MouseDown) != 0 {
		t.Error("listeners should be cleared")
	}
	if parent.ID != 0 {
		t.Error("ID should be reset")
	}

	parent.Dispose()
	if len(order) != 3 {
		t.Error("Dispose should be idempotent")
	}
}

func TestOnUnmountHandleRemove(t *testing.T) {
	e := NewElement("e", 1, 1)
	called := false
	h := e.OnUnmount(func() { called = true })
	h.Remove()
	e.Dispose()
	if called {
		t.Error("removed unmount hook should not run")
	}
}

func TestDisposedElementRejectsRegistrations(t *testing.T) {
	e := NewElement("e", 1, 1)
	e.Dispose()
	if h := e.OnUnmount(func() {}); h != (CallbackHandle{}) {
		t.Error("OnUnmount on a disposed element should return a zero handle")
	}
	if h := e.AddEventListener(MouseDown, func(*PointerEvent) {}); h != (CallbackHandle{}) {
		t.Error("AddEventListener on a disposed element should return a zero handle")
	}
}

func TestSortedChildrenStable(t *testing.T) {
	p := NewContainer("p")
	a := NewElement("a", 1, 1)
	b := NewElement("b", 1, 1)
	c := NewElement("c", 1, 1)
	p.AddChild(a)
	p.AddChild(b)
	p.AddChild(c)
	a.SetZIndex(1)

	got := sortedChildrenOf(p)
	if got[0] != b || got[1] != c || got[2] != a {
		t.Errorf("sorted = [%s %s %s], want [b c a]", got[0].Name, got[1].Name, got[2].Name)
	}
}
