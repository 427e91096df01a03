// Package ecs provides ECS adapters for bango.
package ecs

import (
	"github.com/phanxgames/bango"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for bango interaction events.
// Subscribe to this in your ECS systems to receive swipe and visibility events.
var InteractionEventType = events.NewEventType[bango.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) bango.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event bango.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// OnSwipe subscribes fn to swipe events only.
func OnSwipe(world donburi.World, fn func(donburi.World, bango.InteractionEvent)) {
	subscribeType(world, fn, bango.EventSwipe)
}

// OnVisibility subscribes fn to visible and exit events.
func OnVisibility(world donburi.World, fn func(donburi.World, bango.InteractionEvent)) {
	subscribeType(world, fn, bango.EventVisible, bango.EventExit)
}

func subscribeType(world donburi.World, fn func(donburi.World, bango.InteractionEvent), types ...bango.EventType) {
	InteractionEventType.Subscribe(world, func(w donburi.World, e bango.InteractionEvent) {
		for _, t := range types {
			if e.Type == t {
				fn(w, e)
				return
			}
		}
	})
}
