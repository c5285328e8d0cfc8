package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultAccepted = "accepted"
	resultRejected = "rejected"
)

type metrics struct {
	commands    *prometheus.CounterVec
	transitions *prometheus.CounterVec
	records     prometheus.Gauge
	capacity    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, ns string) *metrics {
	return &metrics{
		commands: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "commands_total",
				Help:      "RFQ commands applied, by command and result",
			},
			[]string{"command", "result"},
		),
		transitions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "rfq_transitions_total",
				Help:      "RFQ state transitions, by target state",
			},
			[]string{"state"},
		),
		records: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "store_records",
				Help:      "Records held by the store",
			},
		),
		capacity: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: ns,
				Name:      "store_capacity",
				Help:      "Maximum number of records the store can hold",
			},
		),
	}
}
