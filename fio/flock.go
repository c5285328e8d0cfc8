package fio

import (
	"path/filepath"

	"github.com/gofrs/flock"
)

const flockName = "flock"

// NewFlock returns the lock file guarding dirPath. It is not acquired yet.
func NewFlock(dirPath string) FileLocker {
	return flock.New(filepath.Join(dirPath, flockName))
}
