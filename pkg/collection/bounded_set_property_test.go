package collection

import (
	"slices"
	"testing"

	"pgregory.net/rapid"
)

func TestBoundedSetMatchesFIFOModel(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		capacity := rapid.IntRange(1, 8).Draw(rt, "capacity")
		values := rapid.SliceOf(rapid.IntRange(0, 20)).Draw(rt, "values")

		s := NewBoundedSet[int](capacity)
		var model []int
		for _, v := range values {
			added := s.Add(v)
			if slices.Contains(model, v) {
				if added {
					rt.Fatalf("re-adding %d reported a change", v)
				}
				continue
			}
			if !added {
				rt.Fatalf("adding %d reported no change", v)
			}
			model = append(model, v)
			if len(model) > capacity {
				model = model[1:]
			}
		}

		if s.Len() > capacity {
			rt.Fatalf("len %d exceeds capacity %d", s.Len(), capacity)
		}
		if got := s.Values(); !slices.Equal(got, model) {
			rt.Fatalf("values %v, want %v", got, model)
		}
	})
}
