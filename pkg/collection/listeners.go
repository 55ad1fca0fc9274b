package collection

import (
	"iter"
	"slices"
	"sync"
)

// Listeners is an ordered, identity-deduplicated set of listeners.
// L must be a type whose values compare by identity, typically a pointer or
// an interface holding pointers. Listeners is safe for concurrent use.
//
// Mutations are serialized together with their hooks: a hook observes the
// changes in the order they were made, and the next mutation starts only
// after it returns. Reads never wait for a hook. Hooks must not mutate the
// collection they are attached to.
type Listeners[L comparable] struct {
	// writeMu serializes mutations and their hooks; mu guards the state.
	writeMu sync.Mutex
	mu      sync.Mutex
	items   []L
	present map[L]struct{}

	onRegistered   func(L)
	onUnregistered func(L)
}

// NewListeners creates an empty collection.
func NewListeners[L comparable]() *Listeners[L] {
	return &Listeners[L]{
		present: make(map[L]struct{}),
	}
}

// OnRegistered sets a hook called once after each successful Register.
func (c *Listeners[L]) OnRegistered(fn func(L)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onRegistered = fn
}

// OnUnregistered sets a hook called once after each successful Unregister.
func (c *Listeners[L]) OnUnregistered(fn func(L)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnregistered = fn
}

// Register appends l and returns true, or returns false if l is already
// present. A duplicate registration keeps the original position.
func (c *Listeners[L]) Register(l L) bool {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if _, exists := c.present[l]; exists {
		c.mu.Unlock()
		return false
	}
	c.present[l] = struct{}{}
	c.items = append(c.items, l)
	hook := c.onRegistered
	c.mu.Unlock()

	if hook != nil {
		hook(l)
	}
	return true
}

// Unregister removes l and reports whether it was present.
func (c *Listeners[L]) Unregister(l L) bool {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	if _, exists := c.present[l]; !exists {
		c.mu.Unlock()
		return false
	}
	delete(c.present, l)
	if i := slices.Index(c.items, l); i >= 0 {
		c.items = slices.Delete(c.items, i, i+1)
	}
	hook := c.onUnregistered
	c.mu.Unlock()

	if hook != nil {
		hook(l)
	}
	return true
}

// UnregisterFunc removes every listener for which match returns true and
// returns the removed listeners in registration order. The unregister hook
// fires once per removed listener.
func (c *Listeners[L]) UnregisterFunc(match func(L) bool) []L {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	var removed []L
	kept := c.items[:0]
	for _, l := range c.items {
		if match(l) {
			removed = append(removed, l)
			delete(c.present, l)
			continue
		}
		kept = append(kept, l)
	}
	clear(c.items[len(kept):])
	c.items = kept
	hook := c.onUnregistered
	c.mu.Unlock()

	if hook != nil {
		for _, l := range removed {
			hook(l)
		}
	}
	return removed
}

// Contains reports whether l is registered.
func (c *Listeners[L]) Contains(l L) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.present[l]
	return exists
}

// IsEmpty reports whether no listener is registered.
func (c *Listeners[L]) IsEmpty() bool {
	return c.Len() == 0
}

// Len returns the number of registered listeners.
func (c *Listeners[L]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Snapshot returns the listeners in registration order. The returned slice
// is a copy and is not affected by later mutation.
func (c *Listeners[L]) Snapshot() []L {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// All iterates over a snapshot taken when All is called.
func (c *Listeners[L]) All() iter.Seq[L] {
	snapshot := c.Snapshot()
	return func(yield func(L) bool) {
		for _, l := range snapshot {
			if !yield(l) {
				return
			}
		}
	}
}
