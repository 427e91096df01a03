package bango

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRootMargin is returned for a root margin that is not one to
	// four space-separated px or % lengths.
	ErrInvalidRootMargin = errors.New("invalid root margin")
	// ErrInvalidThreshold is returned for a threshold outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold out of range [0, 1]")
)

// IntersectionOptions configures an IntersectionObserver.
type IntersectionOptions struct {
	// Root is the element whose bounds act as the viewport. Targets must be
	// descendants of Root. Nil means the surface viewport (primary camera).
	Root *Element
	// RootMargin grows (or, negative, shrinks) the root bounds. CSS margin
	// shorthand with px or % values, e.g. "10px", "0px 20%". Empty = "0px".
	RootMargin string
	// Threshold lists the intersection ratios whose crossing triggers a
	// notification. Empty = [0].
	Threshold []float64
}

// IntersectionEntry describes the intersection state of one target at one
// point in time.
type IntersectionEntry struct {
	Target *Element
	// Time is the surface clock reading in ms.
	Time int64
	// IsIntersecting is true when the target overlaps or touches the root
	// bounds, even with zero area.
	IsIntersecting bool
	// IntersectionRatio is IntersectionRect's area over BoundingRect's area.
	IntersectionRatio float64
	BoundingRect      Rect
	IntersectionRect  Rect
	RootBounds        Rect
}

// --- Root margin ---

type marginLength struct {
	value   float64
	percent bool
}

func (m marginLength) resolve(basis float64) float64 {
	if m.percent {
		return basis * m.value / 100
	}
	return m.value
}

// rootMargin holds the four margin lengths in CSS order.
type rootMargin struct {
	top, right, bottom, left marginLength
}

// parseRootMargin parses CSS margin shorthand: one to four lengths, each in
// px or %. A bare "0" is accepted.
func parseRootMargin(s string) (rootMargin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return rootMargin{}, nil
	}
	if len(fields) > 4 {
		return rootMargin{}, fmt.Errorf("%w: %q has %d values", ErrInvalidRootMargin, s, len(fields))
	}
	vals := make([]marginLength, len(fields))
	for i, f := range fields {
		v, err := parseMarginLength(f)
		if err != nil {
			return rootMargin{}, fmt.Errorf("%w: %q: %v", ErrInvalidRootMargin, s, err)
		}
		vals[i] = v
	}
	switch len(vals) {
	case 1:
		return rootMargin{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return rootMargin{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return rootMargin{vals[0], vals[1], vals[2], vals[1]}, nil
	default:
		return rootMargin{vals[0], vals[1], vals[2], vals[3]}, nil
	}
}

func parseMarginLength(f string) (marginLength, error) {
	if f == "0" {
		return marginLength{}, nil
	}
	var unit string
	switch {
	case strings.HasSuffix(f, "px"):
		unit = "px"
	case strings.HasSuffix(f, "%"):
		unit = "%"
	default:
		return marginLength{}, fmt.Errorf("%q is not a px or %% length", f)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(f, unit), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return marginLength{}, fmt.Errorf("%q is not a number", f)
	}
	return marginLength{value: v, percent: unit == "%"}, nil
}

// apply grows r by the margin. Percentages resolve against r's width for
// left/right and r's height for top/bottom.
func (m rootMargin) apply(r Rect) Rect {
	return r.Expand(
		m.top.resolve(r.Height),
		m.right.resolve(r.Width),
		m.bottom.resolve(r.Height),
		m.left.resolve(r.Width),
	)
}

// normalizeThresholds validates and sorts thresholds. Empty yields [0].
func normalizeThresholds(in []float64) ([]float64, error) {
	if len(in) == 0 {
		return []float64{0}, nil
	}
	out := make([]float64, len(in))
	for i, t := range in {
		if math.IsNaN(t) || t < 0 || t > 1 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidThreshold, t)
		}
		out[i] = t
	}
	sort.Float64s(out)
	return out, nil
}

// --- Observer ---

type observation struct {
	target             *Element
	prevThresholdIndex int
	prevIntersecting   bool
}

// IntersectionObserver reports, once per Surface.Update, targets whose
// intersection with the root crossed a threshold or changed intersecting
// state. The first evaluation after Observe always reports.
type IntersectionObserver struct {
	surface    *Surface
	callback   func([]IntersectionEntry, *IntersectionObserver)
	root       *Element
	margin     rootMargin
	thresholds []float64

	targets  []observation
	records  []IntersectionEntry
	attached bool
}

// NewIntersectionObserver creates an observer on s. callback receives every
// entry queued during a tick, in observation order.
func NewIntersectionObserver(s *Surface, callback func([]IntersectionEntry, *IntersectionObserver), opts IntersectionOptions) (*IntersectionObserver, error) {
	margin, err := parseRootMargin(opts.RootMargin)
	if err != nil {
		return nil, err
	}
	thresholds, err := normalizeThresholds(opts.Threshold)
	if err != nil {
		return nil, err
	}
	return &IntersectionObserver{
		surface:    s,
		callback:   callback,
		root:       opts.Root,
		margin:     margin,
		thresholds: thresholds,
	}, nil
}

// Thresholds returns the sorted thresholds. The returned slice MUST NOT be mutated.
func (o *IntersectionObserver) Thresholds() []float64 {
	return o.thresholds
}

// Observe starts observing el. Observing an element twice is a no-op.
func (o *IntersectionObserver) Observe(el *Element) {
	if el == nil || o.indexOf(el) >= 0 {
		return
	}
	o.targets = append(o.targets, observation{target: el, prevThresholdIndex: -1})
	if !o.attached {
		o.attached = true
		o.surface.observers = append(o.surface.observers, o)
	}
}

// Unobserve stops observing el and drops its queued records.
func (o *IntersectionObserver) Unobserve(el *Element) {
	i := o.indexOf(el)
	if i < 0 {
		return
	}
	copy(o.targets[i:], o.targets[i+1:])
	o.targets[len(o.targets)-1] = observation{}
	o.targets = o.targets[:len(o.targets)-1]

	kept := o.records[:0]
	for _, r := range o.records {
		if r.Target != el {
			kept = append(kept, r)
		}
	}
	o.records = kept

	if len(o.targets) == 0 {
		o.detach()
	}
}

// Disconnect stops observing every target.
func (o *IntersectionObserver) Disconnect() {
	o.targets = nil
	o.records = nil
	o.detach()
}

// TakeRecords returns and clears entries queued but not yet delivered.
func (o *IntersectionObserver) TakeRecords() []IntersectionEntry {
	recs := o.records
	o.records = nil
	return recs
}

// Observing reports whether el is currently observed.
func (o *IntersectionObserver) Observing(el *Element) bool {
	return o.indexOf(el) >= 0
}

func (o *IntersectionObserver) indexOf(el *Element) int {
	for i := range o.targets {
		if o.targets[i].target == el {
			return i
		}
	}
	return -1
}

func (o *IntersectionObserver) detach() {
	if !o.attached {
		return
	}
	o.attached = false
	obs := o.surface.observers
	for i, c := range obs {
		if c == o {
			copy(obs[i:], obs[i+1:])
			obs[len(obs)-1] = nil
			o.surface.observers = obs[:len(obs)-1]
			return
		}
	}
}

// rootBounds returns the margin-adjusted root rect, or false when the
// explicit root is not rendered.
func (o *IntersectionObserver) rootBounds() (Rect, bool) {
	if o.root == nil {
		return o.margin.apply(o.surface.viewportBounds()), true
	}
	if !o.surface.rendered(o.root) {
		return Rect{}, false
	}
	return o.margin.apply(o.root.WorldBounds()), true
}

// measure computes the current entry for target.
func (o *IntersectionObserver) measure(target *Element, root Rect, rootOK bool, now int64) IntersectionEntry {
	entry := IntersectionEntry{Target: target, Time: now, RootBounds: root}
	if target.disposed {
		return entry
	}
	entry.BoundingRect = target.WorldBounds()
	if !rootOK || !o.surface.rendered(target) {
		return entry
	}
	if o.root != nil && (o.root == target || !o.root.Contains(target)) {
		return entry
	}
	isect, ok := entry.BoundingRect.Intersection(root)
	if !ok {
		return entry
	}
	entry.IsIntersecting = true
	entry.IntersectionRect = isect
	if area := entry.BoundingRect.Area(); area > 0 {
		entry.IntersectionRatio = isect.Area() / area
	} else {
		entry.IntersectionRatio = 1
	}
	return entry
}

// thresholdIndex is the number of thresholds at or below ratio.
func (o *IntersectionObserver) thresholdIndex(ratio float64) int {
	return sort.Search(len(o.thresholds), func(i int) bool { return o.thresholds[i] > ratio })
}

// update measures every target, queues changed entries and delivers them.
func (o *IntersectionObserver) update() {
	if len(o.targets) == 0 {
		return
	}
	now := o.surface.clock.NowMillis()
	root, rootOK := o.rootBounds()

	for i := range o.targets {
		ob := &o.targets[i]
		entry := o.measure(ob.target, root, rootOK, now)
		idx := o.thresholdIndex(entry.IntersectionRatio)
		if idx == ob.prevThresholdIndex && entry.IsIntersecting == ob.prevIntersecting {
			continue
		}
		ob.prevThresholdIndex = idx
		ob.prevIntersecting = entry.IsIntersecting
		o.records = append(o.records, entry)
	}

	if len(o.records) == 0 || o.callback == nil {
		return
	}
	recs := o.TakeRecords()
	if o.surface.debug {
		for _, r := range recs {
			debugf("observer: %s intersecting=%t ratio=%.3f",
				elementLabel(r.Target), r.IsIntersecting, r.IntersectionRatio)
		}
	}
	o.callback(recs, o)
}

// rendered reports whether e is attached to the surface tree, not disposed,
// and visible along with every ancestor.
func (s *Surface) rendered(e *Element) bool {
	return e != nil && !e.disposed && isAncestor(s.root, e) && effectivelyVisible(e)
}

// updateObservers runs every attached observer. Observers attached or
// detached by a callback take effect from the next tick.
func (s *Surface) updateObservers() {
	if len(s.observers) == 0 {
		return
	}
	snapshot := make([]*IntersectionObserver, len(s.observers))
	copy(snapshot, s.observers)
	for _, o := range snapshot {
		if o.attached {
			o.update()
		}
	}
}
