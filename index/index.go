// Package index keeps secondary indexes over store records: for one field it maps
// every value to the set of record offsets holding it, and every offset back to
// the value last written there.
package index

import (
	"github.com/google/btree"
)

const defaultDegree = 16

// Index is the secondary index of one field. It is not safe for concurrent use.
type Index[K comparable] struct {
	field   string
	degree  int
	forward map[K]*btree.BTreeG[int]
	reverse map[int]K
}

func New[K comparable](field string, degree int) *Index[K] {
	if degree < 2 {
		degree = defaultDegree
	}
	return &Index[K]{
		field:   field,
		degree:  degree,
		forward: make(map[K]*btree.BTreeG[int]),
		reverse: make(map[int]K),
	}
}

func (ix *Index[K]) Field() string {
	return ix.field
}

// OnFieldWritten records that the record at offset now holds value.
// Sets emptied by a move are kept for the next record taking that value.
func (ix *Index[K]) OnFieldWritten(offset int, value K) {
	if old, ok := ix.reverse[offset]; ok {
		if old == value {
			return
		}
		// any literal change moves the offset, case-only ones included: an
		// offset belongs to at most one value set
		ix.forward[old].Delete(offset)
	}

	set, ok := ix.forward[value]
	if !ok {
		set = btree.NewOrderedG[int](ix.degree)
		ix.forward[value] = set
	}
	set.ReplaceOrInsert(offset)
	ix.reverse[offset] = value
}

// Lookup returns a copy of the offsets holding value in ascending order.
func (ix *Index[K]) Lookup(value K) []int {
	set, ok := ix.forward[value]
	if !ok || set.Len() == 0 {
		return []int{}
	}
	offsets := make([]int, 0, set.Len())
	set.Ascend(func(offset int) bool {
		offsets = append(offsets, offset)
		return true
	})
	return offsets
}

// ValueAt returns the value last recorded for offset.
func (ix *Index[K]) ValueAt(offset int) (K, bool) {
	v, ok := ix.reverse[offset]
	return v, ok
}

// Keys returns the number of distinct values ever seen, empty sets included.
func (ix *Index[K]) Keys() int {
	return len(ix.forward)
}
