package observability

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Compile-time interface check.
var _ MetricFactory = (*PrometheusFactory)(nil)

// PrometheusFactory creates metrics registered with a Prometheus
// registerer. Dotted metric names are rewritten to underscores to fit
// Prometheus naming rules, so "ajo.group.created" becomes
// "ajo_group_created_total".
type PrometheusFactory struct {
	registerer prometheus.Registerer
}

// NewPrometheusFactory returns a factory registering metrics with reg.
// A nil reg falls back to prometheus.DefaultRegisterer.
func NewPrometheusFactory(reg prometheus.Registerer) *PrometheusFactory {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &PrometheusFactory{registerer: reg}
}

// Counter implements MetricFactory.
func (f *PrometheusFactory) Counter(name string) Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{
		Name: promName(name) + "_total",
		Help: "Total number of " + name + " events.",
	})
	f.registerer.MustRegister(c)
	return c
}

// Histogram implements MetricFactory.
func (f *PrometheusFactory) Histogram(name string) Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    promName(name),
		Help:    "Distribution of " + name + " observations.",
		Buckets: prometheus.DefBuckets,
	})
	f.registerer.MustRegister(h)
	return h
}

func promName(name string) string {
	return strings.ReplaceAll(name, ".", "_")
}
