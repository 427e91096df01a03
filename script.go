package bango

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action" yaml:"action"`
	Label  string  `json:"label,omitempty" yaml:"label,omitempty"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	ID     int     `json:"id,omitempty" yaml:"id,omitempty"`
	MS     int64   `json:"ms,omitempty" yaml:"ms,omitempty"`
}

// script is the top-level structure for an input script.
type script struct {
	Steps []scriptStep `json:"steps" yaml:"steps"`
}

var knownActions = map[string]bool{
	"press": true, "move": true, "release": true, "click": true,
	"touchstart": true, "touchmove": true, "touchend": true,
	"swipe": true, "touchswipe": true,
	"wait": true, "advance": true, "scroll": true, "mark": true,
}

// Runner sequences injected input, clock advances and camera moves across
// ticks for replaying recorded interactions. Attach to a Surface via
// SetScriptRunner.
type Runner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
	marks     callbackList[func(string)]
}

// LoadScript parses a JSON or YAML input script and returns a Runner ready to
// be attached to a Surface via SetScriptRunner.
func LoadScript(data []byte) (*Runner, error) {
	var sc script
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &sc); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Runner{steps: sc.Steps}, nil
}

// SetScriptRunner attaches a Runner to the surface. The runner advances from
// Surface.Update before input is processed each tick.
func (s *Surface) SetScriptRunner(r *Runner) {
	s.runner = r
}

// Done reports whether all steps have been executed or the runner failed.
func (r *Runner) Done() bool {
	return r.done
}

// Err returns the error that stopped the runner, if any.
func (r *Runner) Err() error {
	return r.err
}

// OnMark registers fn to receive the label of every "mark" step.
func (r *Runner) OnMark(fn func(label string)) CallbackHandle {
	return r.marks.add(fn)
}

func (r *Runner) fail(err error) {
	r.err = err
	r.done = true
}

// step advances the runner by one tick. Called from Surface.Update.
func (r *Runner) step(s *Surface) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		s.InjectMouseDown(st.X, st.Y)
	case "move":
		s.InjectMouseMove(st.X, st.Y)
	case "release":
		s.InjectMouseUp(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "touchstart":
		s.InjectTouchStart(st.ID, st.X, st.Y)
	case "touchmove":
		s.InjectTouchMove(st.ID, st.X, st.Y)
	case "touchend":
		s.InjectTouchEnd(st.ID, st.X, st.Y)
	case "swipe":
		s.InjectSwipe(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "touchswipe":
		s.InjectTouchSwipe(st.ID, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	case "advance":
		mc, ok := s.clock.(*ManualClock)
		if !ok {
			r.fail(fmt.Errorf("script step %d: advance requires a *ManualClock", r.cursor-1))
			return
		}
		mc.Advance(st.MS)
	case "scroll":
		cam := s.primaryCamera()
		if cam == nil {
			r.fail(fmt.Errorf("script step %d: scroll requires a camera", r.cursor-1))
			return
		}
		cam.X, cam.Y = st.X, st.Y
		cam.ClampToBounds()
	case "mark":
		r.marks.each(func(fn func(string)) { fn(st.Label) })
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
