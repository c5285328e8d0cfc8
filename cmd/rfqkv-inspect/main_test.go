package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cqkv/rfqkv"
	"github.com/cqkv/rfqkv/engine"
	"github.com/cqkv/rfqkv/rfq"
	"github.com/cqkv/rfqkv/snapshot"
)

func writeSnapshot(t *testing.T) (string, uint32) {
	t.Helper()
	s, err := rfqkv.New(4)
	require.NoError(t, err)
	e := engine.New(s)
	for i, requester := range []int32{9, 9, 3} {
		_, err := e.CreateRfq(engine.Create{
			Correlation:  fmt.Sprintf("ord-%d", i),
			ExpireTimeMs: 10_000,
			Quantity:     100,
			Side:         rfq.SideSell,
			SecurityID:   5,
			Requester:    requester,
		})
		require.NoError(t, err)
	}
	require.NoError(t, e.Quote(engine.Quote{RfqID: 1, Responder: 7, Price: 250}))

	dir := t.TempDir()
	snap, err := snapshot.Open(dir)
	require.NoError(t, err)
	_, err = snap.Write(s)
	require.NoError(t, err)
	require.NoError(t, snap.Close())
	return dir, s.Checksum()
}

func TestRun_Summary(t *testing.T) {
	dir, checksum := writeSnapshot(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"-dir", dir}, &out))
	assert.Contains(t, out.String(), "records   3/4")
	assert.Contains(t, out.String(), fmt.Sprintf("checksum  %08x", checksum))
	assert.NotContains(t, out.String(), "STATE")
}

func TestRun_Records(t *testing.T) {
	dir, _ := writeSnapshot(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"-dir", dir, "-records"}, &out))
	assert.Contains(t, out.String(), "QUOTED")
	assert.Contains(t, out.String(), "ord-2")
	assert.Contains(t, out.String(), "250")

	out.Reset()
	require.NoError(t, run([]string{"-dir", dir, "-requester", "3"}, &out))
	assert.Contains(t, out.String(), "ord-2")
	assert.NotContains(t, out.String(), "ord-0")

	out.Reset()
	require.NoError(t, run([]string{"-dir", dir, "-clordid", "ord-1"}, &out))
	assert.Contains(t, out.String(), "ord-1")
	assert.NotContains(t, out.String(), "ord-2")
}

func TestRun_Config(t *testing.T) {
	dir, _ := writeSnapshot(t)
	path := filepath.Join(t.TempDir(), "rfqkv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snapshot_dir: "+dir+"\nkeydir: btree\nlog_level: error\n"), 0644))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-config", path}, &out))
	assert.Contains(t, out.String(), "records   3/4")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run([]string{"-dir", t.TempDir()}, &out))
	assert.Error(t, run([]string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, &out))
	assert.Error(t, run([]string{"-bogus"}, &out))
}
