package snapshot

import "fmt"

var (
	ErrBadMagic         = addPrefix("not a snapshot file")
	ErrBadVersion       = addPrefix("unsupported snapshot version")
	ErrChecksumMismatch = addPrefix("snapshot checksum mismatch")
	ErrLocked           = addPrefix("snapshot directory is locked by another process")
	ErrTruncated        = addPrefix("snapshot file is truncated")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("snapshot err: %s", errStr)
}
