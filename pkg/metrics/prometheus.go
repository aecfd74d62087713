package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Tabulation outcome label values.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

// Manager owns the tabulation metrics.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         *prometheus.Registry

	tabulations         *prometheus.CounterVec
	tabulationDuration  prometheus.Histogram
	rounds              prometheus.Counter
	degenerateRounds    prometheus.Counter
	weightSpent         prometheus.Histogram
	ballots             prometheus.Gauge
	candidates          prometheus.Gauge
	seats               prometheus.Gauge
	quota               prometheus.Gauge
	remainingWeightRate prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager. Without WithPrometheusRegistry it
// registers on a fresh registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "allocscore",
		subsystem:        "tabulation",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.tabulations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "runs_total",
		Help:        "Total number of tabulations by outcome",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.tabulationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duration_milliseconds",
		Help:        "Tabulation wall time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.rounds = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rounds_total",
		Help:        "Total number of rounds run",
		ConstLabels: labels,
	})

	m.degenerateRounds = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "degenerate_rounds_total",
		Help:        "Rounds in which no ballot weight could be spent",
		ConstLabels: labels,
	})

	m.weightSpent = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "round_weight_spent",
		Help:        "Ballot weight spent per round",
		Buckets:     prometheus.ExponentialBuckets(1, 2, 12),
		ConstLabels: labels,
	})

	m.ballots = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "ballots",
		Help:        "Ballots in the last tabulation",
		ConstLabels: labels,
	})

	m.candidates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "candidates",
		Help:        "Candidates in the last tabulation",
		ConstLabels: labels,
	})

	m.seats = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "seats",
		Help:        "Seats filled by the last tabulation",
		ConstLabels: labels,
	})

	m.quota = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "quota",
		Help:        "Quota of the last tabulation",
		ConstLabels: labels,
	})

	m.remainingWeightRate = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "remaining_weight_ratio",
		Help:        "Unspent ballot weight over ballot count after the last tabulation",
		ConstLabels: labels,
	})
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordTabulation records a finished tabulation.
func (m *Manager) RecordTabulation(outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.tabulations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.tabulationDuration.Observe(durationMs)
	}
}

// RecordElection records the size of the election being tabulated.
func (m *Manager) RecordElection(ballots, candidates, seats int, quota float64) {
	if !m.enabled {
		return
	}
	m.ballots.Set(float64(ballots))
	m.candidates.Set(float64(candidates))
	m.seats.Set(float64(seats))
	m.quota.Set(quota)
}

// RecordRound records one round and the weight it spent.
func (m *Manager) RecordRound(degenerate bool, spent float64) {
	if !m.enabled {
		return
	}
	m.rounds.Inc()
	if degenerate {
		m.degenerateRounds.Inc()
		return
	}
	m.weightSpent.Observe(spent)
}

// UpdateRemainingWeight sets the share of ballot weight left unspent.
func (m *Manager) UpdateRemainingWeight(ratio float64) {
	if !m.enabled {
		return
	}
	m.remainingWeightRate.Set(ratio)
}

// WriteTextfile writes every metric in the text exposition format, for the
// node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the process-wide registry.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
