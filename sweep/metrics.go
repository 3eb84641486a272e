package sweep

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	decoderUnique = "unique"
	decoderList   = "list"

	outcomeSuccess    = "success"
	outcomeFailure    = "failure"
	outcomeInfeasible = "infeasible"
)

// Metrics counts decode attempts per decoder and outcome and records decode
// latency. Each Metrics owns its registry so several sweeps can run in one
// process.
type Metrics struct {
	registry *prometheus.Registry
	trials   *prometheus.CounterVec
	seconds  *prometheus.HistogramVec
}

// NewMetrics creates and registers the sweep metrics
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		trials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rs",
			Subsystem: "sweep",
			Name:      "decodes_total",
			Help:      "Decode attempts by decoder and outcome.",
		}, []string{"scenario", "decoder", "outcome"}),
		seconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "rs",
			Subsystem: "sweep",
			Name:      "decode_seconds",
			Help:      "Time spent in a single decode call.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"decoder"}),
	}
	m.registry.MustRegister(m.trials, m.seconds)
	return m
}

// Registry returns the registry holding the sweep metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format, for the
// node exporter's textfile collector
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observe(o *Outcome) {
	unique := outcomeFailure
	if o.Unique {
		unique = outcomeSuccess
	}
	m.trials.WithLabelValues(o.Scenario, decoderUnique, unique).Inc()
	m.seconds.WithLabelValues(decoderUnique).Observe(o.UniqueTime.Seconds())

	list := outcomeFailure
	switch {
	case o.ListInfeasible:
		list = outcomeInfeasible
	case o.List:
		list = outcomeSuccess
	}
	m.trials.WithLabelValues(o.Scenario, decoderList, list).Inc()
	if !o.ListInfeasible {
		m.seconds.WithLabelValues(decoderList).Observe(o.ListTime.Seconds())
	}
}
