// Package metrics exposes Prometheus metrics of the trade activity check.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/guttosm/tradeactivity/internal/domain/models"
)

const namespace = "tradeactivity"

// Recorder keeps the report metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	assets      *prometheus.GaugeVec
	toRemove    prometheus.Gauge
	cutoff      prometheus.Gauge
	runs        prometheus.Counter
	failures    prometheus.Counter
	runDuration prometheus.Histogram
}

// NewRecorder creates a Recorder with Go and process collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		assets: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "assets",
			Help:      "Whitelisted assets per activity category in the last report",
		}, []string{"category"}),
		toRemove: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "assets_to_remove",
			Help:      "Removal candidates in the last report",
		}),
		cutoff: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "cutoff_timestamp_seconds",
			Help:      "Start of the trade window of the last report",
		}),
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "runs_total",
			Help:      "Successful report runs",
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "failures_total",
			Help:      "Report runs failed on a source error",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "run_duration_seconds",
			Help:      "Report run duration",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// Registry returns the registry to expose on /metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// ObserveReport records a successful run.
func (r *Recorder) ObserveReport(rep *models.Report, elapsed time.Duration) {
	counts := map[models.Category]int{
		models.NotTraded:            0,
		models.InsufficientlyTraded: 0,
		models.SufficientlyTraded:   0,
		models.NewlyAdded:           0,
		models.FeePaid:              0,
	}
	for _, cl := range rep.Classifications {
		counts[cl.Category]++
	}
	for c, n := range counts {
		r.assets.WithLabelValues(c.String()).Set(float64(n))
	}
	r.toRemove.Set(float64(len(rep.ToRemove)))
	r.cutoff.Set(float64(rep.Cutoff.Unix()))
	r.runs.Inc()
	r.runDuration.Observe(elapsed.Seconds())
}

// ObserveFailure records a failed run.
func (r *Recorder) ObserveFailure() { r.failures.Inc() }
