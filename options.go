package rfqkv

import (
	"go.uber.org/zap"

	"github.com/cqkv/rfqkv/keydir"
)

type options struct {
	keydirType  string
	indexDegree int
	logger      *zap.Logger
}

type Option func(*options)

var defaultOptions = options{
	keydirType:  keydir.TypeHash,
	indexDegree: 16,
}

// WithKeydir selects the primary key directory, keydir.TypeHash or keydir.TypeBTree.
func WithKeydir(name string) Option {
	return func(o *options) {
		o.keydirType = name
	}
}

// WithIndexDegree sets the btree degree of the secondary index offset sets.
func WithIndexDegree(degree int) Option {
	return func(o *options) {
		o.indexDegree = degree
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
