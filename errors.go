package rfqkv

import (
	"fmt"

	"github.com/cqkv/rfqkv/codec"
)

var (
	ErrInvalidCapacity   = addPrefix("capacity must be positive and addressable")
	ErrCapacityExhausted = addPrefix("no free slot, store is at capacity")
	ErrDuplicateKey      = addPrefix("key already exists")
	ErrNotFound          = addPrefix("no record for key")
	ErrInvalidOffset     = addPrefix("offset is not the start of a live record")
	ErrIndexOutOfRange   = addPrefix("buffer index out of range")
	ErrShortBuffer       = addPrefix("source buffer does not hold a whole record")

	ErrValueTooLong = codec.ErrValueTooLong
)

func addPrefix(errStr string) error {
	return fmt.Errorf("rfqkv err: %s", errStr)
}
