package bango

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// --- root margin ---

func TestParseRootMargin(t *testing.T) {
	px := func(v float64) marginLength { return marginLength{value: v} }
	pct := func(v float64) marginLength { return marginLength{value: v, percent: true} }

	tests := []struct {
		in   string
		want rootMargin
	}{
		{"", rootMargin{}},
		{"0", rootMargin{}},
		{"0px", rootMargin{}},
		{"10px", rootMargin{px(10), px(10), px(10), px(10)}},
		{"-5px", rootMargin{px(-5), px(-5), px(-5), px(-5)}},
		{"10px 20%", rootMargin{px(10), pct(20), px(10), pct(20)}},
		{"1px 2px 3px", rootMargin{px(1), px(2), px(3), px(2)}},
		{"1px 2px 3px 4px", rootMargin{px(1), px(2), px(3), px(4)}},
		{"  12.5px   0  ", rootMargin{px(12.5), px(0), px(12.5), px(0)}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseRootMargin(tt.in)
			if err != nil {
				t.Fatalf("parseRootMargin(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("parseRootMargin(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRootMargin_Invalid(t *testing.T) {
	for _, in := range []string{"10", "10em", "px", "abc%", "1px 2px 3px 4px 5px", "NaNpx", "Infpx"} {
		t.Run(in, func(t *testing.T) {
			_, err := parseRootMargin(in)
			if !errors.Is(err, ErrInvalidRootMargin) {
				t.Errorf("parseRootMargin(%q) err = %v, want ErrInvalidRootMargin", in, err)
			}
		})
	}
}

func TestRootMarginApply(t *testing.T) {
	m, err := parseRootMargin("10px 50%")
	if err != nil {
		t.Fatal(err)
	}
	got := m.apply(Rect{X: 0, Y: 0, Width: 200, Height: 100})
	want := Rect{X: -100, Y: -10, Width: 400, Height: 120}
	if got != want {
		t.Errorf("apply = %+v, want %+v", got, want)
	}
}

// --- thresholds ---

func TestNormalizeThresholds(t *testing.T) {
	got, err := normalizeThresholds(nil)
	if err != nil || !reflect.DeepEqual(got, []float64{0}) {
		t.Errorf("normalizeThresholds(nil) = %v, %v; want [0]", got, err)
	}

	in := []float64{1, 0.25, 0.5}
	got, err = normalizeThresholds(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []float64{0.25, 0.5, 1}) {
		t.Errorf("got %v, want sorted", got)
	}
	if in[0] != 1 {
		t.Error("input slice must not be mutated")
	}

	for _, bad := range []float64{-0.1, 1.01, math.NaN()} {
		if _, err := normalizeThresholds([]float64{0.5, bad}); !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("threshold %v: err = %v, want ErrInvalidThreshold", bad, err)
		}
	}
}

func TestThresholdIndex(t *testing.T) {
	o := &IntersectionObserver{thresholds: []float64{0, 0.5, 1}}
	tests := []struct {
		ratio float64
		want  int
	}{
		{0, 1},
		{0.25, 1},
		{0.5, 2},
		{0.99, 2},
		{1, 3},
	}
	for _, tt := range tests {
		if got := o.thresholdIndex(tt.ratio); got != tt.want {
			t.Errorf("thresholdIndex(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}

// --- observer ---

type entryRecorder struct {
	batches [][]IntersectionEntry
}

func (r *entryRecorder) record(entries []IntersectionEntry, _ *IntersectionObserver) {
	cp := make([]IntersectionEntry, len(entries))
	copy(cp, entries)
	r.batches = append(r.batches, cp)
}

func (r *entryRecorder) last() IntersectionEntry {
	b := r.batches[len(r.batches)-1]
	return b[len(b)-1]
}

func newObserverFixture(t *testing.T, opts IntersectionOptions) (*Surface, *ManualClock, *IntersectionObserver, *entryRecorder) {
	t.Helper()
	s, clk := newTestSurface()
	rec := &entryRecorder{}
	o, err := NewIntersectionObserver(s, rec.record, opts)
	if err != nil {
		t.Fatalf("NewIntersectionObserver: %v", err)
	}
	return s, clk, o, rec
}

func TestIntersectionObserver_FirstEvaluationAlwaysReports(t *testing.T) {
	s, clk, o, rec := newObserverFixture(t, IntersectionOptions{})
	in := NewElement("in", 100, 100)
	out := NewElement("out", 100, 100)
	out.X = 2000
	s.Root().AddChild(in)
	s.Root().AddChild(out)
	o.Observe(in)
	o.Observe(out)

	clk.Set(5)
	s.Update()

	if len(rec.batches) != 1 || len(rec.batches[0]) != 2 {
		t.Fatalf("expected one batch of 2 entries, got %v", rec.batches)
	}
	a, b := rec.batches[0][0], rec.batches[0][1]
	if a.Target != in || !a.IsIntersecting || a.IntersectionRatio != 1 || a.Time != 5 {
		t.Errorf("unexpected entry for in: %+v", a)
	}
	if b.Target != out || b.IsIntersecting || b.IntersectionRatio != 0 {
		t.Errorf("unexpected entry for out: %+v", b)
	}
	if a.RootBounds != (Rect{Width: 800, Height: 600}) {
		t.Errorf("RootBounds = %+v", a.RootBounds)
	}
}

func TestIntersectionObserver_NoChangeNoEntry(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{})
	el := NewElement("el", 100, 100)
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	s.Update()
	el.SetPosition(10, 10) // still fully visible
	s.Update()

	if len(rec.batches) != 1 {
		t.Errorf("expected 1 batch, got %d", len(rec.batches))
	}
}

func TestIntersectionObserver_ThresholdCrossings(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{Threshold: []float64{0, 0.5, 1}})
	el := NewElement("el", 100, 100)
	el.X = 775 // 25% visible
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	if got := rec.last().IntersectionRatio; got != 0.25 {
		t.Fatalf("ratio = %v, want 0.25", got)
	}

	el.SetPosition(760, 0) // 40%: same band
	s.Update()
	if len(rec.batches) != 1 {
		t.Fatalf("no crossing expected, got %d batches", len(rec.batches))
	}

	el.SetPosition(740, 0) // 60%
	s.Update()
	if len(rec.batches) != 2 || rec.last().IntersectionRatio != 0.6 {
		t.Fatalf("expected crossing of 0.5, got %+v", rec.batches)
	}

	el.SetPosition(700, 0) // 100%
	s.Update()
	if len(rec.batches) != 3 || rec.last().IntersectionRatio != 1 {
		t.Fatalf("expected crossing of 1, got %+v", rec.batches)
	}
}

func TestIntersectionObserver_EdgeAdjacentIsIntersecting(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{})
	el := NewElement("el", 100, 100)
	el.X = 800
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	e := rec.last()
	if !e.IsIntersecting || e.IntersectionRatio != 0 {
		t.Errorf("edge-adjacent entry = %+v, want intersecting with ratio 0", e)
	}
}

func TestIntersectionObserver_ZeroAreaTarget(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{})
	el := NewElement("marker", 0, 0)
	el.SetPosition(50, 50)
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	if e := rec.last(); !e.IsIntersecting || e.IntersectionRatio != 1 {
		t.Errorf("zero-area target inside root = %+v, want ratio 1", e)
	}
}

func TestIntersectionObserver_RootMargin(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{RootMargin: "200px"})
	el := NewElement("below", 100, 100)
	el.Y = 700 // below the 600px viewport, inside the margin
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	if e := rec.last(); !e.IsIntersecting || e.IntersectionRatio != 1 {
		t.Errorf("entry = %+v, want fully intersecting with margin", e)
	}
	if e := rec.last(); e.RootBounds != (Rect{X: -200, Y: -200, Width: 1200, Height: 1000}) {
		t.Errorf("RootBounds = %+v", e.RootBounds)
	}
}

func TestIntersectionObserver_NegativeRootMargin(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{RootMargin: "-100px"})
	el := NewElement("corner", 50, 50)
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	if rec.last().IsIntersecting {
		t.Error("element in the shrunk-away corner should not intersect")
	}
}

func TestIntersectionObserver_ExplicitRoot(t *testing.T) {
	s, _ := newTestSurface()
	scroller := NewElement("scroller", 100, 100)
	s.Root().AddChild(scroller)
	item := NewElement("item", 50, 50)
	item.X = 150
	scroller.AddChild(item)
	stranger := NewElement("stranger", 50, 50)
	s.Root().AddChild(stranger)

	r := &entryRecorder{}
	obs, err := NewIntersectionObserver(s, r.record, IntersectionOptions{Root: scroller})
	if err != nil {
		t.Fatal(err)
	}
	obs.Observe(item)
	obs.Observe(stranger)
	s.Update()

	if len(r.batches) != 1 || len(r.batches[0]) != 2 {
		t.Fatalf("expected one batch of two, got %v", r.batches)
	}
	if r.batches[0][0].IsIntersecting {
		t.Error("item outside the scroller should not intersect")
	}
	if r.batches[0][1].IsIntersecting {
		t.Error("a target outside the root's subtree never intersects")
	}

	item.SetPosition(60, 0) // 40 of 50 px inside
	s.Update()
	if e := r.last(); !e.IsIntersecting || e.IntersectionRatio != 0.8 {
		t.Errorf("entry = %+v, want intersecting at 0.8", e)
	}
}

func TestIntersectionObserver_HiddenAndDetached(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{})
	parent := NewContainer("group")
	s.Root().AddChild(parent)
	el := NewElement("el", 100, 100)
	parent.AddChild(el)
	o.Observe(el)

	s.Update()
	if !rec.last().IsIntersecting {
		t.Fatal("expected intersecting")
	}

	parent.Visible = false
	s.Update()
	if rec.last().IsIntersecting {
		t.Error("an element under a hidden ancestor should not intersect")
	}

	parent.Visible = true
	s.Update()
	if !rec.last().IsIntersecting {
		t.Fatal("expected intersecting again")
	}

	el.RemoveFromParent()
	s.Update()
	if rec.last().IsIntersecting {
		t.Error("a detached element should not intersect")
	}
}

func TestIntersectionObserver_Camera(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{})
	cam := s.NewCamera(Rect{Width: 800, Height: 600})
	el := NewElement("far", 100, 100)
	el.X = 1500
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	if rec.last().IsIntersecting {
		t.Fatal("element should be off-camera")
	}

	cam.X = 1500 // visible world x range is [1100, 1900]
	s.Update()
	if !rec.last().IsIntersecting {
		t.Error("element should be visible after scrolling the camera")
	}
}

func TestIntersectionObserver_UnobserveAndDisconnect(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{})
	a := NewElement("a", 10, 10)
	b := NewElement("b", 10, 10)
	s.Root().AddChild(a)
	s.Root().AddChild(b)

	o.Observe(a)
	o.Observe(a)
	o.Observe(b)
	if len(s.observers) != 1 {
		t.Fatalf("observer should attach once, got %d", len(s.observers))
	}

	o.Unobserve(a)
	if o.Observing(a) || !o.Observing(b) {
		t.Error("unobserve should only drop a")
	}
	s.Update()
	if len(rec.batches) != 1 || len(rec.batches[0]) != 1 || rec.batches[0][0].Target != b {
		t.Errorf("expected only b reported, got %v", rec.batches)
	}

	o.Disconnect()
	if len(s.observers) != 0 {
		t.Error("disconnect should detach from the surface")
	}
	b.SetPosition(5000, 0)
	s.Update()
	if len(rec.batches) != 1 {
		t.Error("no entries expected after disconnect")
	}

	o.Observe(b)
	s.Update()
	if len(rec.batches) != 2 || rec.last().IsIntersecting {
		t.Error("re-observing should report a fresh first entry")
	}
}

func TestIntersectionObserver_TakeRecords(t *testing.T) {
	s, _ := newTestSurface()
	o, err := NewIntersectionObserver(s, nil, IntersectionOptions{})
	if err != nil {
		t.Fatal(err)
	}
	el := NewElement("el", 10, 10)
	s.Root().AddChild(el)
	o.Observe(el)

	s.Update()
	recs := o.TakeRecords()
	if len(recs) != 1 || !recs[0].IsIntersecting {
		t.Fatalf("expected one queued record, got %v", recs)
	}
	if len(o.TakeRecords()) != 0 {
		t.Error("TakeRecords should clear the queue")
	}
}

func TestIntersectionObserver_DisposedTarget(t *testing.T) {
	s, _, o, rec := newObserverFixture(t, IntersectionOptions{})
	el := NewElement("el", 10, 10)
	s.Root().AddChild(el)
	o.Observe(el)
	s.Update()

	el.Dispose()
	s.Update()
	if rec.last().IsIntersecting {
		t.Error("a disposed target should report not intersecting")
	}
}

func TestNewIntersectionObserver_InvalidOptions(t *testing.T) {
	s, _ := newTestSurface()
	if _, err := NewIntersectionObserver(s, nil, IntersectionOptions{RootMargin: "5em"}); !errors.Is(err, ErrInvalidRootMargin) {
		t.Errorf("err = %v, want ErrInvalidRootMargin", err)
	}
	if _, err := NewIntersectionObserver(s, nil, IntersectionOptions{Threshold: []float64{2}}); !errors.Is(err, ErrInvalidThreshold) {
		t.Errorf("err = %v, want ErrInvalidThreshold", err)
	}
}
