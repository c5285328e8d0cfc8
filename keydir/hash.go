package keydir

var _ Keydir = (*Hash)(nil)

// Hash is the default keydir, O(1) lookups sized once for the store capacity.
type Hash struct {
	offsets map[int32]int
}

func NewHash(capacity int) *Hash {
	if capacity < 0 {
		capacity = 0
	}
	return &Hash{offsets: make(map[int32]int, capacity)}
}

func (h *Hash) Put(key int32, offset int) bool {
	if _, ok := h.offsets[key]; ok {
		return false
	}
	h.offsets[key] = offset
	return true
}

func (h *Hash) Get(key int32) (int, bool) {
	offset, ok := h.offsets[key]
	return offset, ok
}

func (h *Hash) Contains(key int32) bool {
	_, ok := h.offsets[key]
	return ok
}

func (h *Hash) Size() int {
	return len(h.offsets)
}
