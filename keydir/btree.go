package keydir

import (
	"github.com/google/btree"
)

var _ Keydir = (*BTree)(nil)

const defaultDegree = 32

// BTree implement the keydir with ordered keys
type BTree struct {
	tree *btree.BTreeG[Item]
}

// Item is one key to offset mapping
type Item struct {
	key    int32
	offset int
}

func itemLess(a, b Item) bool {
	return a.key < b.key
}

func NewBTree(degree int) *BTree {
	if degree < 2 {
		degree = defaultDegree
	}
	return &BTree{
		tree: btree.NewG[Item](degree, itemLess),
	}
}

func (bt *BTree) Put(key int32, offset int) bool {
	if bt.tree.Has(Item{key: key}) {
		return false
	}
	bt.tree.ReplaceOrInsert(Item{key: key, offset: offset})
	return true
}

func (bt *BTree) Get(key int32) (int, bool) {
	item, ok := bt.tree.Get(Item{key: key})
	if !ok {
		return 0, false
	}
	return item.offset, true
}

func (bt *BTree) Contains(key int32) bool {
	return bt.tree.Has(Item{key: key})
}

func (bt *BTree) Size() int {
	return bt.tree.Len()
}

// Ascend calls fn for every key in ascending order until fn returns false.
func (bt *BTree) Ascend(fn func(key int32, offset int) bool) {
	bt.tree.Ascend(func(item Item) bool {
		return fn(item.key, item.offset)
	})
}
