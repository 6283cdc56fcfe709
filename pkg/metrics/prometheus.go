package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	signalsTotal   *prometheus.CounterVec
	rotationsTotal *prometheus.CounterVec
	storeRecords   prometheus.Gauge
	storeBytes     prometheus.Gauge
	latency        *prometheus.HistogramVec
}

// New creates a Prometheus recorder registered on reg. A nil reg registers on
// the default registry served at /metrics.
func New(reg prometheus.Registerer) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Recorder{
		signalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signallog_signals_total",
				Help: "Total number of log_signal calls by outcome",
			},
			[]string{"status"},
		),
		rotationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "signallog_rotations_total",
				Help: "Total number of log rotations by result",
			},
			[]string{"result"},
		),
		storeRecords: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "signallog_store_records",
				Help: "Records in the active signal log after the last append",
			},
		),
		storeBytes: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "signallog_store_bytes",
				Help: "Size of the active signal log in bytes after the last append",
			},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "signallog_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSignal counts a log call outcome ("success", "error", ...).
func (r *Recorder) RecordSignal(status string) {
	r.signalsTotal.WithLabelValues(status).Inc()
}

// RecordRotation counts a rotation attempt.
func (r *Recorder) RecordRotation(ok bool) {
	result := "success"
	if !ok {
		result = "failure"
	}
	r.rotationsTotal.WithLabelValues(result).Inc()
}

// RecordStoreSize records the active store size.
func (r *Recorder) RecordStoreSize(records int, bytes int64) {
	r.storeRecords.Set(float64(records))
	r.storeBytes.Set(float64(bytes))
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Noop discards all measurements.
type Noop struct{}

func (Noop) RecordSignal(string)           {}
func (Noop) RecordRotation(bool)           {}
func (Noop) RecordStoreSize(int, int64)    {}
func (Noop) RecordLatency(string, float64) {}
