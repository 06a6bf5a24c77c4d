// Package metrics exports job aggregates in the Prometheus text format so a
// node exporter textfile collector can pick them up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalnine/evalagg/internal/aggregate"
)

const namespace = "evalagg"

var labels = []string{"job", "scope", "algorithm", "params", "mode"}

type Exporter struct {
	registry    *prometheus.Registry
	accuracy    *prometheus.GaugeVec
	averageTime *prometheus.GaugeVec
	samples     *prometheus.GaugeVec
}

func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		accuracy: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "variant",
			Name:      "accuracy",
			Help:      "Aggregate accuracy of an algorithm variant.",
		}, labels),
		averageTime: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "variant",
			Name:      "average_time_ms",
			Help:      "Summed average evaluation time of an algorithm variant in milliseconds.",
		}, labels),
		samples: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "variant",
			Name:      "samples",
			Help:      "Number of samples behind an aggregate row.",
		}, labels),
	}
	e.registry.MustRegister(e.accuracy, e.averageTime, e.samples)
	return e
}

// Observe records every row of the job's scopes.
func (e *Exporter) Observe(job string, scopes []aggregate.Scope) {
	for _, sc := range scopes {
		for _, r := range sc.Rows {
			lv := []string{job, sc.Title, r.Name, r.Params, string(r.Mode)}
			e.accuracy.WithLabelValues(lv...).Set(r.Accuracy)
			e.averageTime.WithLabelValues(lv...).Set(r.AverageTime)
			e.samples.WithLabelValues(lv...).Set(float64(r.SampleSize))
		}
	}
}

// WriteTextfile writes everything observed so far to path atomically.
func (e *Exporter) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, e.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
