package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type options struct {
	logger    *zap.Logger
	registry  prometheus.Registerer
	namespace string
}

type Option func(*options)

var defaultOptions = options{
	namespace: "rfqkv",
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegistry registers the engine metrics on reg. Without it the metrics go to
// a private registry and are not exported.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}
