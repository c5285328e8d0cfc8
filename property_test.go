package rfqkv

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// applyOps appends every key, then writes values[i] to the requester field of
// the record at slots[i] modulo the record count.
func applyOps(capacity int, keys []int32, slots []int, values []int32) *Store {
	s, err := New(capacity)
	if err != nil {
		panic(err)
	}
	for _, k := range keys {
		_, _ = s.AppendWithKey(k)
	}
	if s.Count() == 0 {
		return s
	}
	for i := 0; i < len(slots) && i < len(values); i++ {
		h, _ := s.GetByBufferIndex(slots[i] % s.Count())
		h.SetRequester(values[i])
	}
	return s
}

// TestStoreInvariants checks store invariants over random operation sequences
func TestStoreInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("keys are unique and count never exceeds capacity", prop.ForAll(
		func(capacity int, keys []int32) bool {
			s := applyOps(capacity, keys, nil, nil)
			if s.Count() > s.Capacity() {
				return false
			}

			seen := make(map[int32]bool)
			n := 0
			for h := range s.All() {
				if seen[h.ID()] {
					return false
				}
				seen[h.ID()] = true
				n++
			}
			if n != s.Count() {
				return false
			}

			// one more append with a fresh key fails exactly when full
			full := s.Count() == s.Capacity()
			_, err := s.AppendWithKey(1_000_000)
			if full {
				return err == ErrCapacityExhausted && s.Count() == s.Capacity()
			}
			return err == nil
		},
		gen.IntRange(1, 8),
		gen.SliceOf(gen.Int32Range(0, 12)),
	))

	properties.Property("every live offset is indexed under exactly its current value", prop.ForAll(
		func(keys []int32, slots []int, values []int32) bool {
			s := applyOps(16, keys, slots, values)

			candidates := map[int32]bool{0: true}
			for _, v := range values {
				candidates[v] = true
			}
			for h := range s.All() {
				hits := 0
				for v := range candidates {
					for _, off := range s.LookupRequester(v) {
						if off == h.Offset() {
							hits++
							if v != h.Requester() {
								return false
							}
						}
					}
				}
				if hits != 1 {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int32Range(0, 30)),
		gen.SliceOf(gen.IntRange(0, 15)),
		gen.SliceOf(gen.Int32Range(0, 4)),
	))

	properties.Property("replaying the same operations yields the same checksum", prop.ForAll(
		func(keys []int32, slots []int, values []int32) bool {
			a := applyOps(8, keys, slots, values)
			b := applyOps(8, keys, slots, values)
			return a.Checksum() == b.Checksum()
		},
		gen.SliceOf(gen.Int32Range(-50, 50)),
		gen.SliceOf(gen.IntRange(0, 7)),
		gen.SliceOf(gen.Int32Range(-3, 3)),
	))

	properties.TestingRun(t)
}
