// Package config loads the YAML configuration of an rfqkv process.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/cqkv/rfqkv"
	"github.com/cqkv/rfqkv/keydir"
)

var ErrInvalidConfig = errors.New("config err: invalid configuration")

var validate = validator.New()

type Config struct {
	Capacity         int    `yaml:"capacity" validate:"min=1"`
	Keydir           string `yaml:"keydir" validate:"oneof=hash btree"`
	IndexDegree      int    `yaml:"index_degree" validate:"min=2"`
	LogLevel         string `yaml:"log_level" validate:"oneof=debug info warn error"`
	SnapshotDir      string `yaml:"snapshot_dir" validate:"required"`
	MetricsNamespace string `yaml:"metrics_namespace" validate:"required"`
}

func Default() Config {
	return Config{
		Capacity:         1 << 16,
		Keydir:           keydir.TypeHash,
		IndexDegree:      16,
		LogLevel:         "info",
		SnapshotDir:      "./snapshot",
		MetricsNamespace: "rfqkv",
	}
}

// Load reads the file at path over the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// Parse decodes data over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	// report the first failing field
	e := verrs[0]
	switch e.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", ErrInvalidConfig, e.Field())
	case "min":
		return fmt.Errorf("%w: %s must be at least %s", ErrInvalidConfig, e.Field(), e.Param())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s], got %v", ErrInvalidConfig, e.Field(), e.Param(), e.Value())
	}
	return fmt.Errorf("%w: %s failed %s", ErrInvalidConfig, e.Field(), e.Tag())
}

// Logger builds a production zap logger at the configured level.
func (c Config) Logger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func (c Config) StoreOptions(logger *zap.Logger) []rfqkv.Option {
	return []rfqkv.Option{
		rfqkv.WithKeydir(c.Keydir),
		rfqkv.WithIndexDegree(c.IndexDegree),
		rfqkv.WithLogger(logger),
	}
}
