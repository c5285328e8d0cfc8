package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cqkv/rfqkv"
	"github.com/cqkv/rfqkv/codec"
	"github.com/cqkv/rfqkv/keydir"
)

func filledStore(t *testing.T) *rfqkv.Store {
	t.Helper()
	s, err := rfqkv.New(8)
	require.NoError(t, err)
	for key := int32(1); key <= 3; key++ {
		h, err := s.AppendWithKey(key * 10)
		require.NoError(t, err)
		h.SetRequester(7)
		h.SetResponder(100 + key)
		h.SetClusterSession(int64(key % 2))
		require.NoError(t, h.SetRequesterClOrdID("ord"))
		require.NoError(t, h.SetSide("SELL"))
		h.SetLimitPrice(int64(key) * 1000)
	}
	return s
}

func TestSnapshotter_WriteRead(t *testing.T) {
	src := filledStore(t)
	snap, err := Open(t.TempDir())
	require.NoError(t, err)
	defer snap.Close()

	meta, err := snap.Write(src)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, meta.ID)
	assert.Equal(t, 8, meta.Capacity)
	assert.Equal(t, 3, meta.Count)
	assert.Equal(t, src.Checksum(), meta.Checksum)
	assert.Equal(t, uint16(codec.SchemaVersion), meta.Schema)

	dst, got, err := snap.Read(rfqkv.WithKeydir(keydir.TypeBTree))
	require.NoError(t, err)
	assert.Equal(t, meta, got)
	assert.Equal(t, src.Checksum(), dst.Checksum())
	assert.Equal(t, src.Bytes(), dst.Bytes())
	assert.Equal(t, 3, dst.Count())

	h, err := dst.GetByKey(20)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), h.LimitPrice())
	assert.Equal(t, "SELL", h.Side())
	assert.Equal(t, src.LookupRequester(7), dst.LookupRequester(7))
	assert.Equal(t, src.LookupClusterSession(1), dst.LookupClusterSession(1))
	assert.Equal(t, src.LookupRequesterClOrdID("ord"), dst.LookupRequesterClOrdID("ord"))
}

func TestSnapshotter_Overwrite(t *testing.T) {
	src := filledStore(t)
	snap, err := Open(t.TempDir())
	require.NoError(t, err)
	defer snap.Close()

	first, err := snap.Write(src)
	require.NoError(t, err)
	_, err = src.AppendWithKey(99)
	require.NoError(t, err)
	second, err := snap.Write(src)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	meta, err := Stat(snap.Dir())
	require.NoError(t, err)
	assert.Equal(t, second, meta)
	assert.Equal(t, 4, meta.Count)

	_, err = os.Stat(filepath.Join(snap.Dir(), tmpName))
	assert.True(t, os.IsNotExist(err))
}

func TestSnapshotter_EmptyStore(t *testing.T) {
	src, err := rfqkv.New(2)
	require.NoError(t, err)
	snap, err := Open(t.TempDir())
	require.NoError(t, err)
	defer snap.Close()

	_, err = snap.Write(src)
	require.NoError(t, err)
	dst, meta, err := snap.Read()
	require.NoError(t, err)
	assert.Equal(t, 0, meta.Count)
	assert.Equal(t, 0, dst.Count())
	assert.Equal(t, src.Checksum(), dst.Checksum())
}

func TestOpen_Locked(t *testing.T) {
	dir := t.TempDir()
	snap, err := Open(dir)
	require.NoError(t, err)

	_, err = Open(dir)
	assert.Equal(t, ErrLocked, err)

	require.NoError(t, snap.Close())
	again, err := Open(dir)
	require.NoError(t, err)
	assert.Nil(t, again.Close())
}

func writeSnapshot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	snap, err := Open(dir)
	require.NoError(t, err)
	_, err = snap.Write(filledStore(t))
	require.NoError(t, err)
	require.NoError(t, snap.Close())
	return dir
}

func corrupt(t *testing.T, dir string, edit func([]byte) []byte) {
	t.Helper()
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, edit(data), 0644))
}

func TestLoad_Corrupt(t *testing.T) {
	cases := []struct {
		name string
		edit func([]byte) []byte
		want error
	}{
		{"body", func(b []byte) []byte { b[len(b)-1] ^= 0xff; return b }, ErrChecksumMismatch},
		{"header", func(b []byte) []byte { b[28]++; return b }, ErrChecksumMismatch},
		{"magic", func(b []byte) []byte { b[0] = 'X'; return b }, ErrBadMagic},
		{"version", func(b []byte) []byte { b[4] = 9; return b }, ErrBadVersion},
		{"truncated body", func(b []byte) []byte { return b[:len(b)-1] }, ErrTruncated},
		{"truncated header", func(b []byte) []byte { return b[:10] }, ErrTruncated},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := writeSnapshot(t)
			corrupt(t, dir, c.edit)
			_, _, err := Load(dir)
			assert.True(t, errors.Is(err, c.want), "got %v", err)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, _, err := Load(t.TempDir())
	assert.True(t, os.IsNotExist(err))
}

func TestHeader_Encode(t *testing.T) {
	h := &header{
		Meta: Meta{
			ID:       uuid.New(),
			Schema:   codec.SchemaVersion,
			Capacity: 100,
			Count:    3,
			Checksum: 0xdeadbeef,
		},
		bodyLen: 77,
		crc:     0x01020304,
	}
	got, err := decodeHeader(h.encode())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}
