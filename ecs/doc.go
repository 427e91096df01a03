// Package ecs provides ECS adapters for bango's interaction events.
//
// The primary adapter is [NewDonburiStore], which bridges recognized
// interactions (swipes, visible and exit notifications) into a [Donburi]
// world as typed events. Subscribe to [InteractionEventType] in your ECS
// systems, or use [OnSwipe] and [OnVisibility] to receive one family.
//
// Only elements with a non-zero EntityID are forwarded.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	surface.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
