// Package snapshot persists a store image to a directory and restores it.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cqkv/rfqkv"
	"github.com/cqkv/rfqkv/codec"
	"github.com/cqkv/rfqkv/fio"
	"github.com/cqkv/rfqkv/utils"
)

const (
	FileName = "snapshot.rfq"
	tmpName  = FileName + ".tmp"
)

// Snapshotter owns a snapshot directory for as long as it is open.
type Snapshotter struct {
	dir  string
	lock fio.FileLocker
	log  *zap.Logger
}

// Open creates dir if needed and locks it. A directory already held by another
// Snapshotter yields ErrLocked.
func Open(dir string, opts ...Option) (*Snapshotter, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	lock := fio.NewFlock(dir)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrLocked
	}
	return &Snapshotter{dir: dir, lock: lock, log: o.logger}, nil
}

func (s *Snapshotter) Dir() string {
	return s.dir
}

// Write replaces the directory snapshot with the current image of store.
// The new file is written aside and renamed into place once synced.
func (s *Snapshotter) Write(store *rfqkv.Store) (Meta, error) {
	body := snappy.Encode(nil, store.Bytes()[:store.Count()*codec.Stride])
	h := &header{
		Meta: Meta{
			ID:       uuid.New(),
			Schema:   codec.SchemaVersion,
			Capacity: store.Capacity(),
			Count:    store.Count(),
			Checksum: store.Checksum(),
		},
		bodyLen: len(body),
	}
	h.crc = fileCrc(h.encode(), body)

	tmp := filepath.Join(s.dir, tmpName)
	file, err := fio.CreateFileIO(tmp)
	if err != nil {
		return Meta{}, err
	}
	if err := writeAll(file, h.encode(), body); err != nil {
		_ = file.Close()
		return Meta{}, err
	}
	if err := file.Close(); err != nil {
		return Meta{}, err
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, FileName)); err != nil {
		return Meta{}, err
	}

	s.log.Info("snapshot written",
		zap.Stringer("id", h.ID),
		zap.Int("count", h.Count),
		zap.Uint32("checksum", h.Checksum),
		zap.Int("compressed_bytes", len(body)),
	)
	return h.Meta, nil
}

func writeAll(file fio.IOManager, parts ...[]byte) error {
	for _, p := range parts {
		if _, err := file.Write(p); err != nil {
			return err
		}
	}
	return file.Sync()
}

// Read restores the directory snapshot into a new store.
func (s *Snapshotter) Read(opts ...rfqkv.Option) (*rfqkv.Store, Meta, error) {
	return Load(s.dir, opts...)
}

func (s *Snapshotter) Close() error {
	return s.lock.Unlock()
}

// Load restores the snapshot in dir without taking the directory lock. The
// store is rebuilt record by record so keys and indexes are derived again, and
// its checksum must match the one recorded at write time.
func Load(dir string, opts ...rfqkv.Option) (*rfqkv.Store, Meta, error) {
	h, body, err := readFile(filepath.Join(dir, FileName))
	if err != nil {
		return nil, Meta{}, err
	}

	raw, err := snappy.Decode(nil, body)
	if err != nil {
		return nil, h.Meta, fmt.Errorf("%w: %w", ErrChecksumMismatch, err)
	}
	if len(raw) != h.Count*codec.Stride {
		return nil, h.Meta, fmt.Errorf("%w: body holds %d bytes for %d records", ErrChecksumMismatch, len(raw), h.Count)
	}

	store, err := rfqkv.New(h.Capacity, opts...)
	if err != nil {
		return nil, h.Meta, err
	}
	for off := 0; off < len(raw); off += codec.Stride {
		if _, err := store.AppendByCopy(raw, off); err != nil {
			return nil, h.Meta, fmt.Errorf("restore record at offset %d: %w", off, err)
		}
	}
	if got := store.Checksum(); got != h.Checksum {
		return nil, h.Meta, fmt.Errorf("%w: store %08x, recorded %08x", ErrChecksumMismatch, got, h.Checksum)
	}
	return store, h.Meta, nil
}

// Stat reads and verifies the snapshot header and body without restoring it.
func Stat(dir string) (Meta, error) {
	h, _, err := readFile(filepath.Join(dir, FileName))
	if err != nil {
		return Meta{}, err
	}
	return h.Meta, nil
}

func readFile(path string) (*header, []byte, error) {
	file, err := fio.OpenFileIO(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	size, err := file.Size()
	if err != nil {
		return nil, nil, err
	}
	buf := make([]byte, size)
	if _, err := file.Read(buf, 0); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, err
	}

	h, err := decodeHeader(buf)
	if err != nil {
		return nil, nil, err
	}
	body := buf[headerLength:]
	if len(body) < h.bodyLen {
		return nil, nil, ErrTruncated
	}
	body = body[:h.bodyLen]
	if fileCrc(buf[:headerLength], body) != h.crc {
		return nil, nil, ErrChecksumMismatch
	}
	return h, body, nil
}

// fileCrc covers the encoded header up to its crc field, then the body.
func fileCrc(hdr, body []byte) uint32 {
	return utils.UpdateCrc(utils.GenerateCrc(hdr[:crcOffset]), body)
}
