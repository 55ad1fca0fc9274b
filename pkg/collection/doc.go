// Package collection provides the ordered, deduplicated collections used by
// the subscription layer.
//
// # Listeners
//
// Listeners is an identity-deduplicated observer registry. Iteration yields
// listeners in registration order. Registering a listener that is already
// present is a no-op and does not move it; a listener that is unregistered
// and registered again is appended at the end.
//
// Owners can attach OnRegistered and OnUnregistered hooks. Each hook fires
// exactly once per successful Register or Unregister call. Mutations and
// their hooks are serialized, so hooks see changes in the order they were
// made. Hooks may read the collection but must not mutate it.
//
// # BoundedSet
//
// BoundedSet is a fixed-capacity ordered set with pure insertion-order FIFO
// eviction:
//
//	s := collection.NewBoundedSet[string](2)
//	s.Add("a")
//	s.Add("b")
//	s.Add("a") // no-op, "a" keeps its position
//	s.Add("c") // evicts "a"
//
// It is not an LRU cache: neither Contains nor re-insertion refreshes an
// element. RetainAll is unsupported.
package collection
