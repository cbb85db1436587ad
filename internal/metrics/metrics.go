// Package metrics exports result tables as Prometheus metrics.
//
// Each Exporter owns its registry, so several runs in one process never
// collide on metric registration.
package metrics

import (
	"bytes"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/roach88/ticktock/internal/ticktock"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "ticktock"

// Exporter accumulates interval observations.
type Exporter struct {
	registry  *prometheus.Registry
	intervals *prometheus.CounterVec
	seconds   *prometheus.HistogramVec
	finalizes *prometheus.CounterVec
}

// NewExporter creates an exporter whose metrics are prefixed with namespace.
// An empty namespace uses DefaultNamespace.
func NewExporter(namespace string) *Exporter {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	e := &Exporter{
		registry: prometheus.NewRegistry(),
		intervals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "intervals_total",
				Help:      "Reconciled intervals by ticker",
			},
			[]string{"ticker"},
		),
		seconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "interval_duration_seconds",
				Help:      "Elapsed time of reconciled intervals",
				Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
			[]string{"ticker"},
		),
		finalizes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "finalize_total",
				Help:      "Finalize calls by outcome",
			},
			[]string{"outcome"},
		),
	}

	e.registry.MustRegister(e.intervals, e.seconds, e.finalizes)
	return e
}

// Observe records every row of table and counts one successful finalize.
func (e *Exporter) Observe(table *ticktock.ResultTable) {
	for _, rec := range table.Records() {
		e.intervals.WithLabelValues(rec.Ticker).Inc()
		e.seconds.WithLabelValues(rec.Ticker).Observe(rec.Duration().Seconds())
	}
	e.finalizes.WithLabelValues("ok").Inc()
}

// ObserveError counts a failed finalize under the error's code.
func (e *Exporter) ObserveError(err error) {
	outcome := string(ticktock.CodeOf(err))
	if outcome == "" {
		outcome = "error"
	}
	e.finalizes.WithLabelValues(outcome).Inc()
}

// Registry returns the exporter's registry, for serving over HTTP.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// WriteText writes all metrics in the Prometheus text exposition format.
func (e *Exporter) WriteText(w io.Writer) error {
	families, err := e.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := encoder.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}

	_, err = w.Write(buf.Bytes())
	return err
}
