package collection

import (
	"container/list"
	"errors"
	"iter"
	"sync"
)

// ErrUnsupportedOperation is returned for operations a collection cannot
// honour without breaking its ordering guarantees.
var ErrUnsupportedOperation = errors.New("unsupported operation")

// Unbounded disables eviction when passed as BoundedSet capacity.
const Unbounded = 0

// BoundedSet is an insertion-ordered set that holds at most Cap elements.
// Adding a new element to a full set evicts the oldest element still present.
// BoundedSet is safe for concurrent use.
type BoundedSet[T comparable] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	index    map[T]*list.Element
}

// NewBoundedSet creates a set holding at most capacity elements.
// A capacity <= 0 means the set never evicts.
func NewBoundedSet[T comparable](capacity int) *BoundedSet[T] {
	if capacity < 0 {
		capacity = Unbounded
	}
	return &BoundedSet[T]{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[T]*list.Element),
	}
}

// Add inserts v and reports whether it was added. Adding a value that is
// already present changes neither membership nor order. When the insert
// overflows the capacity, the oldest element is evicted.
func (s *BoundedSet[T]) Add(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(v)
}

func (s *BoundedSet[T]) addLocked(v T) bool {
	if _, exists := s.index[v]; exists {
		return false
	}

	s.index[v] = s.order.PushBack(v)

	if s.capacity > 0 && s.order.Len() > s.capacity {
		oldest := s.order.Remove(s.order.Front()).(T)
		delete(s.index, oldest)
	}
	return true
}

// AddAll inserts every value in order and reports whether the set changed.
func (s *BoundedSet[T]) AddAll(values ...T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, v := range values {
		if s.addLocked(v) {
			changed = true
		}
	}
	return changed
}

// Remove deletes v and reports whether it was present.
func (s *BoundedSet[T]) Remove(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeLocked(v)
}

func (s *BoundedSet[T]) removeLocked(v T) bool {
	elem, exists := s.index[v]
	if !exists {
		return false
	}
	s.order.Remove(elem)
	delete(s.index, v)
	return true
}

// RemoveAll deletes every given value and reports whether the set changed.
func (s *BoundedSet[T]) RemoveAll(values ...T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for _, v := range values {
		if s.removeLocked(v) {
			changed = true
		}
	}
	return changed
}

// RetainAll is not supported: retaining a subset cannot be reconciled with
// the FIFO eviction bookkeeping.
func (s *BoundedSet[T]) RetainAll(...T) error {
	return ErrUnsupportedOperation
}

// Contains reports whether v is present. It does not affect ordering.
func (s *BoundedSet[T]) Contains(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.index[v]
	return exists
}

// ContainsAll reports whether every given value is present.
func (s *BoundedSet[T]) ContainsAll(values ...T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		if _, exists := s.index[v]; !exists {
			return false
		}
	}
	return true
}

// Clear removes all elements.
func (s *BoundedSet[T]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Init()
	s.index = make(map[T]*list.Element)
}

// IsEmpty reports whether the set has no elements.
func (s *BoundedSet[T]) IsEmpty() bool {
	return s.Len() == 0
}

// Len returns the number of elements.
func (s *BoundedSet[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Cap returns the capacity, or Unbounded.
func (s *BoundedSet[T]) Cap() int {
	return s.capacity
}

// Values returns a copy of the elements, oldest first.
func (s *BoundedSet[T]) Values() []T {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]T, 0, s.order.Len())
	for e := s.order.Front(); e != nil; e = e.Next() {
		result = append(result, e.Value.(T))
	}
	return result
}

// All iterates over a snapshot of the elements, oldest first.
func (s *BoundedSet[T]) All() iter.Seq[T] {
	values := s.Values()
	return func(yield func(T) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	}
}
