package main

import (
	"fmt"
	"io"

	"github.com/phanxgames/bango"
)

// replayer builds a headless surface from a Layout and reports every swipe,
// visibility notification and script mark to out.
type replayer struct {
	layout   *Layout
	out      io.Writer
	clock    *bango.ManualClock
	surface  *bango.Surface
	elements map[string]*bango.Element
}

func newReplayer(l *Layout, out io.Writer, debug bool) (*replayer, error) {
	r := &replayer{
		layout:   l,
		out:      out,
		clock:    &bango.ManualClock{},
		surface:  bango.NewHeadlessSurface(l.Surface.Width, l.Surface.Height),
		elements: make(map[string]*bango.Element, len(l.Elements)),
	}
	r.surface.SetClock(r.clock)
	r.surface.SetDebugMode(debug)

	if c := l.Camera; c.Enabled {
		cam := r.surface.NewCamera(bango.Rect{Width: l.Surface.Width, Height: l.Surface.Height})
		if c.X != 0 || c.Y != 0 {
			cam.X, cam.Y = c.X, c.Y
		}
		cam.Zoom = c.Zoom
		if b := c.Bounds; b.Width > 0 && b.Height > 0 {
			cam.SetBounds(bango.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height})
			cam.ClampToBounds()
		}
	}

	for _, ec := range l.Elements {
		if err := r.addElement(ec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *replayer) addElement(ec ElementConfig) error {
	el := bango.NewElement(ec.Name, ec.Width, ec.Height)
	el.X, el.Y = ec.X, ec.Y
	el.SetZIndex(ec.ZIndex)

	parent := r.surface.Root()
	if ec.Parent != "" {
		parent = r.elements[ec.Parent]
	}
	parent.AddChild(el)
	r.elements[ec.Name] = el

	if ec.Swipe != "" {
		axis := bango.AxisX
		if ec.Swipe == "y" {
			axis = bango.AxisY
		}
		r.surface.NewGestureRecognizer(el, bango.GestureConfig{Axis: axis}, func(e bango.SwipeEvent) {
			r.printf("swipe el=%s distance=%.2f velocity=%.4f source=%s", ec.Name, e.Distance, e.Velocity, e.Source)
		})
	}

	if vc := ec.Visibility; vc.Enabled {
		opts := bango.VisibilityOptions{
			RootMargin:       vc.RootMargin,
			Threshold:        vc.Threshold,
			PersistAfterLoad: vc.PersistAfterLoad,
			OnVisible:        func() { r.printf("visible el=%s", ec.Name) },
			OnExit:           func() { r.printf("exit el=%s", ec.Name) },
		}
		if vc.Root != "" {
			opts.Root = r.elements[vc.Root]
		}
		if _, err := r.surface.NewVisibilityTracker(el, opts); err != nil {
			return fmt.Errorf("element %q: %w", ec.Name, err)
		}
	}
	return nil
}

func (r *replayer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, "t=%dms "+format+"\n", append([]any{r.clock.NowMillis()}, args...)...)
}

// run drives the surface until the script finishes, advancing the clock by
// TickMS after each Update.
func (r *replayer) run(runner *bango.Runner) error {
	runner.OnMark(func(label string) { r.printf("mark %s", label) })
	r.surface.SetScriptRunner(runner)

	for tick := 0; tick < r.layout.MaxTicks; tick++ {
		r.surface.Update()
		if runner.Done() {
			return runner.Err()
		}
		r.clock.Advance(r.layout.TickMS)
	}
	return fmt.Errorf("script did not finish within %d ticks", r.layout.MaxTicks)
}

// replay runs script against a fresh surface built from l.
func replay(l *Layout, script []byte, out io.Writer, debug bool) error {
	runner, err := bango.LoadScript(script)
	if err != nil {
		return err
	}
	r, err := newReplayer(l, out, debug)
	if err != nil {
		return err
	}
	return r.run(runner)
}
