package fio

import "os"

// FileIO is the default implement for IOManager
type FileIO struct {
	fd *os.File
}

// NewFileIO opens file for appending, creating it if needed.
func NewFileIO(file string) (*FileIO, error) {
	return openFileIO(file, os.O_APPEND|os.O_RDWR|os.O_CREATE)
}

// CreateFileIO opens file empty, truncating any previous content.
func CreateFileIO(file string) (*FileIO, error) {
	return openFileIO(file, os.O_APPEND|os.O_RDWR|os.O_CREATE|os.O_TRUNC)
}

// OpenFileIO opens an existing file read only.
func OpenFileIO(file string) (*FileIO, error) {
	return openFileIO(file, os.O_RDONLY)
}

func openFileIO(file string, flag int) (*FileIO, error) {
	fd, err := os.OpenFile(file, flag, 0644)
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd}, nil
}

func (fio *FileIO) Read(buf []byte, offset int64) (int, error) {
	return fio.fd.ReadAt(buf, offset)
}
func (fio *FileIO) Write(data []byte) (int, error) {
	return fio.fd.Write(data)
}
func (fio *FileIO) Size() (int64, error) {
	stat, err := fio.fd.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}
func (fio *FileIO) Sync() error {
	return fio.fd.Sync()
}
func (fio *FileIO) Close() error {
	return fio.fd.Close()
}
