package benchmark

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// Recorder collects benchmark timings as Prometheus metrics on its own
// registry so repeated runs in one process never collide with the default one.
type Recorder struct {
	registry *prometheus.Registry

	// FitDuration tracks Fit wall time per algorithm and dataset.
	FitDuration *prometheus.HistogramVec

	// PredictDuration tracks Score wall time per algorithm and dataset.
	PredictDuration *prometheus.HistogramVec

	// Score holds the latest score per algorithm and dataset.
	Score *prometheus.GaugeVec

	// Runs counts completed runs.
	Runs *prometheus.CounterVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	labels := []string{"algorithm", "dataset"}
	// Buckets from sub-millisecond KNN scoring to multi-second logistic fits
	buckets := prometheus.ExponentialBuckets(0.0001, 4, 10)

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		FitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gdlearn_fit_duration_seconds",
				Help:    "Duration of estimator Fit in seconds",
				Buckets: buckets,
			},
			labels,
		),
		PredictDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gdlearn_predict_duration_seconds",
				Help:    "Duration of estimator Score on the test rows in seconds",
				Buckets: buckets,
			},
			labels,
		),
		Score: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "gdlearn_score",
				Help: "Test score of the last run (accuracy or R2)",
			},
			labels,
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gdlearn_benchmark_runs_total",
				Help: "Total number of completed benchmark runs",
			},
			labels,
		),
	}
	r.registry.MustRegister(r.FitDuration, r.PredictDuration, r.Score, r.Runs)
	return r
}

// Observe records one result.
func (r *Recorder) Observe(res Result) {
	r.FitDuration.WithLabelValues(res.Algorithm, res.Dataset).Observe(res.FitTime.Seconds())
	r.PredictDuration.WithLabelValues(res.Algorithm, res.Dataset).Observe(res.PredictTime.Seconds())
	r.Score.WithLabelValues(res.Algorithm, res.Dataset).Set(res.Score)
	r.Runs.WithLabelValues(res.Algorithm, res.Dataset).Inc()
}

// Gatherer exposes the private registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics in the text exposition format, suitable
// for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
