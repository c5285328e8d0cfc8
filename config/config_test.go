package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cqkv/rfqkv"
)

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
capacity: 1024
keydir: btree
index_degree: 8
log_level: debug
snapshot_dir: /var/lib/rfqkv
metrics_namespace: desk
`))
	require.NoError(t, err)
	assert.Equal(t, Config{
		Capacity:         1024,
		Keydir:           "btree",
		IndexDegree:      8,
		LogLevel:         "debug",
		SnapshotDir:      "/var/lib/rfqkv",
		MetricsNamespace: "desk",
	}, c)
}

func TestParse_Defaults(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c, err = Parse([]byte("capacity: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, c.Capacity)
	assert.Equal(t, Default().Keydir, c.Keydir)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"capacity":      "capacity: 0",
		"keydir":        "keydir: skiplist",
		"index_degree":  "index_degree: 1",
		"log_level":     "log_level: loud",
		"snapshot_dir":  `snapshot_dir: ""`,
		"unknown field": "buckets: 3",
		"bad yaml":      "capacity: [",
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.True(t, errors.Is(err, ErrInvalidConfig), "%s: %v", name, err)
	}

	_, err := Parse([]byte("keydir: skiplist"))
	assert.Contains(t, err.Error(), "Keydir must be one of [hash btree]")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rfqkv.yaml")
	require.NoError(t, os.WriteFile(path, []byte("capacity: 3\nlog_level: warn\n"), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Capacity)

	logger, err := c.Logger()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	s, err := rfqkv.New(c.Capacity, c.StoreOptions(zap.NewNop())...)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Capacity())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(err))
}
