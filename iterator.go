package rfqkv

import (
	"iter"

	"github.com/cqkv/rfqkv/codec"
)

// Iterator walks live records in insertion order. Records appended while
// iterating are visited as well.
type Iterator struct {
	s   *Store
	off int
}

func (s *Store) Iterator() *Iterator {
	return &Iterator{s: s}
}

func (it *Iterator) Rewind() {
	it.off = 0
}

func (it *Iterator) Next() {
	it.off += codec.Stride
}

func (it *Iterator) Valid() bool {
	return it.off < it.s.nextOffset
}

func (it *Iterator) Handle() Handle {
	return Handle{s: it.s, off: it.off}
}

// All returns a sequence over every live record in insertion order.
func (s *Store) All() iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for it := s.Iterator(); it.Valid(); it.Next() {
			if !yield(it.Handle()) {
				return
			}
		}
	}
}
