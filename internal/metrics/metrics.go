// Package metrics exposes server and simulation counters to Prometheus.
// Label values are bounded: modes come from the registry and reasons and
// results are fixed strings.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for RecordRejected.
const (
	ReasonRateLimit = "rate_limit"
	ReasonCapacity  = "capacity"
	ReasonNoPTY     = "no_pty"
)

// Verification results for RecordVerification.
const (
	ResultMatch    = "match"
	ResultMismatch = "mismatch"
	ResultError    = "error"
)

// Metrics holds the collectors of one process, registered on their own registry.
type Metrics struct {
	registry *prometheus.Registry

	sessionsActive   prometheus.Gauge
	sessionsTotal    prometheus.Counter
	sessionsRejected *prometheus.CounterVec
	runsTotal        *prometheus.CounterVec
	runScore         *prometheus.HistogramVec
	ticksTotal       prometheus.Counter
	tickDuration     prometheus.Histogram
	verifications    *prometheus.CounterVec
}

// New creates and registers all collectors, plus the Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		sessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "shooter_sessions_active",
			Help: "Currently connected SSH sessions",
		}),
		sessionsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "shooter_sessions_total",
			Help: "SSH sessions accepted",
		}),
		sessionsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shooter_sessions_rejected_total",
			Help: "SSH sessions refused",
		}, []string{"reason"}),
		runsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shooter_runs_total",
			Help: "Finished runs",
		}, []string{"mode"}),
		runScore: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shooter_run_score",
			Help:    "Final score of finished runs",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		}, []string{"mode"}),
		ticksTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "shooter_ticks_total",
			Help: "Simulation ticks advanced",
		}),
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "shooter_tick_duration_seconds",
			Help:    "Time spent advancing one tick",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.02},
		}),
		verifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "shooter_replay_verifications_total",
			Help: "Replay verifications by outcome",
		}, []string{"result"}),
	}
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SessionStarted records a new session. Call SessionEnded when it closes.
func (m *Metrics) SessionStarted() {
	m.sessionsTotal.Inc()
	m.sessionsActive.Inc()
}

func (m *Metrics) SessionEnded() {
	m.sessionsActive.Dec()
}

// RecordRejected counts a refused session. reason is one of the Reason constants.
func (m *Metrics) RecordRejected(reason string) {
	m.sessionsRejected.WithLabelValues(reason).Inc()
}

// RecordTick records the duration of one tick.
func (m *Metrics) RecordTick(d time.Duration) {
	m.ticksTotal.Inc()
	m.tickDuration.Observe(d.Seconds())
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(mode string, score int64) {
	m.runsTotal.WithLabelValues(mode).Inc()
	m.runScore.WithLabelValues(mode).Observe(float64(score))
}

// RecordVerification counts a replay verification. result is one of the Result constants.
func (m *Metrics) RecordVerification(result string) {
	m.verifications.WithLabelValues(result).Inc()
}
