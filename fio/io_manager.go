package fio

// IOManager is the file abstraction the snapshot layer reads and writes through.
type IOManager interface {
	Read([]byte, int64) (int, error)
	Write([]byte) (int, error)
	Size() (int64, error)
	Sync() error
	Close() error
}

// FileLocker guards a directory against a second writer.
type FileLocker interface {
	TryLock() (bool, error)
	Unlock() error
}
