// Package subscription implements the hierarchical subscription registry.
//
// A subscription is a (path, field mask, listener) triple. It is independent
// of any compiled tree: paths are plain dotted strings and need not exist in
// a catalog.
//
// # Matching
//
// An update for path P and field mask F reaches every subscription whose
// path equals P or is an ancestor of P, and whose mask intersects F.
// Subscribing to a branch therefore receives the changes of every
// descendant:
//
//	Vehicle.Body        receives Vehicle.Body.Door.IsOpen
//	Vehicle.Cabin       does not
//
// # Delivery
//
// Dispatch delivers to matching subscriptions in registration order, over a
// snapshot taken when dispatch starts. A listener whose OnChange returns an
// error or panics gets a *ListenerError through its own OnError; delivery to
// the remaining listeners continues and the caller never sees the failure.
//
// # Lifecycle hooks
//
// Config.OnFirstSubscriber and Config.OnLastUnsubscribed fire when a
// (path, mask) group gains its first or loses its last subscription. Owners
// use them to attach and detach an upstream broker subscription. Hooks run
// in the order of the changes they report and must not subscribe or
// unsubscribe on the same registry.
package subscription
