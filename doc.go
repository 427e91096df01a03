// Package bango provides pointer-gesture recognition and viewport-visibility
// tracking for [Ebitengine] programs.
//
// A [Surface] owns a tree of [Element] boxes and turns mouse and touch input
// into DOM-style events (mousedown, touchstart, ...) that bubble from the
// element under the pointer to the [Document]. Two primitives build on that:
//
//   - [GestureRecognizer] follows one drag at a time on an element and emits a
//     single [SwipeEvent] (signed distance, velocity in units/ms) when the
//     drag ends. Mouse drags keep tracking outside the element through
//     document listeners and suppress text selection while held.
//   - [VisibilityTracker] wraps an [IntersectionObserver] bound to one element
//     and reports whether it is in view, with optional persist-after-load.
//
// bango draws nothing. Rendering and any animation in response to a swipe
// are up to the caller.
//
// # Quick start
//
//	surface := bango.NewSurface(640, 480)
//	card := bango.NewElement("card", 300, 200)
//	surface.Root().AddChild(card)
//
//	surface.NewGestureRecognizer(card, bango.GestureConfig{}, func(e bango.SwipeEvent) {
//		if e.Distance < -50 {
//			nextSlide()
//		}
//	})
//
//	lazy, err := surface.NewVisibilityTracker(card, bango.VisibilityOptions{
//		PersistAfterLoad: true,
//		OnVisible:        loadImage,
//	})
//
// Call [Surface.Update] once per tick from your ebiten.Game, or use [Run].
// Disposing an element disposes every recognizer and tracker bound to it.
//
// # Testing
//
// [NewHeadlessSurface] never polls Ebitengine. Drive it with
// [Surface.Dispatch], the Inject methods, or a script loaded with
// [LoadScript], and pair it with a [ManualClock] for deterministic
// velocities.
//
// [Ebitengine]: https://ebitengine.org
package bango
