// Package metrics exposes Prometheus instruments for cleaning runs.
package metrics

import (
	"github.com/JonMunkholm/salesclean/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesclean_runs_total",
		Help: "Total number of cleaning runs by outcome.",
	}, []string{"status"})

	RowsRead = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salesclean_rows_read_total",
		Help: "Total number of data rows loaded.",
	})

	RowsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salesclean_rows_written_total",
		Help: "Total number of data rows written after filtering.",
	})

	RowsDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salesclean_rows_dropped_total",
		Help: "Total number of rows removed by the numeric filter.",
	}, []string{"reason"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "salesclean_run_duration_seconds",
		Help:    "Duration of successful cleaning runs.",
		Buckets: prometheus.DefBuckets,
	})

	CleaningsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "salesclean_cleanings_active",
		Help: "Number of cleanings currently holding a limiter slot.",
	})

	ArchiveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salesclean_archive_errors_total",
		Help: "Total number of runs that could not be archived.",
	})
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ObserveRun records the outcome of one cleaning run. res is ignored when
// err is non-nil.
func ObserveRun(res *core.Result, err error) {
	if err != nil || res == nil {
		RunsTotal.WithLabelValues(StatusError).Inc()
		return
	}

	RunsTotal.WithLabelValues(StatusSuccess).Inc()
	RowsRead.Add(float64(res.Stats.RowsIn))
	RowsWritten.Add(float64(res.Stats.RowsOut))
	for reason, n := range res.Stats.Dropped {
		RowsDropped.WithLabelValues(string(reason)).Add(float64(n))
	}
	RunDuration.Observe(res.Duration.Seconds())
}
