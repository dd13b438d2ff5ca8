// Package metrics exports container activity to Prometheus. An Observer is
// attached to any number of containers with dict.WithObserver; containers
// are told apart by their name label.
package metrics

import (
	"github.com/amp-labs/dict/dict"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Observer implements dict.Observer with a set of Prometheus collectors.
// The collectors are safe for concurrent use, so one Observer may be shared
// by containers owned by different goroutines.
type Observer struct {
	operations *prometheus.CounterVec
	failures   *prometheus.CounterVec
	entries    *prometheus.GaugeVec
}

var _ dict.Observer = (*Observer)(nil)

// NewObserver registers the collectors with reg and returns an Observer.
// A nil reg means prometheus.DefaultRegisterer. Registering twice with the
// same registerer panics, as with promauto.
func NewObserver(reg prometheus.Registerer) *Observer {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Observer{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dict_operations_total",
			Help: "The total number of container operations",
		}, []string{"dict", "op"}),

		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dict_failures_total",
			Help: "The total number of failed container operations, by failure kind",
		}, []string{"dict", "op", "kind"}),

		entries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "dict_entries",
			Help: "The number of entries after the last operation",
		}, []string{"dict"}),
	}
}

// Observe records one operation.
func (o *Observer) Observe(event dict.Event) {
	op := string(event.Op)

	o.operations.WithLabelValues(event.Name, op).Inc()

	if event.Err != nil {
		o.failures.WithLabelValues(event.Name, op, dict.KindOf(event.Err).String()).Inc()
	}

	o.entries.WithLabelValues(event.Name).Set(float64(event.Size))
}

// Forget drops every series carrying the given container name, e.g. after
// the container has been freed.
func (o *Observer) Forget(name string) {
	labels := prometheus.Labels{"dict": name}

	o.operations.DeletePartialMatch(labels)
	o.failures.DeletePartialMatch(labels)
	o.entries.DeletePartialMatch(labels)
}
