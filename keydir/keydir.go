package keydir

// Keydir defined the primary key directory interface
// you can use some other data structure once you implement this interface.
// Implementations are not safe for concurrent use, the store owning a keydir
// is driven by a single writer.
type Keydir interface {
	// Put maps key to offset, it returns false and keeps the old mapping if the key exists
	Put(key int32, offset int) bool
	Get(key int32) (int, bool)
	Contains(key int32) bool
	Size() int
}

const (
	TypeHash  = "hash"
	TypeBTree = "btree"
)

// New returns the keydir registered under name, falling back to the hash keydir.
func New(name string, capacity, degree int) Keydir {
	switch name {
	case TypeBTree:
		return NewBTree(degree)
	default:
		return NewHash(capacity)
	}
}
