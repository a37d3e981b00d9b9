package assembler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics wraps the Prometheus counters/histograms the façade reports
// through as it drives build -> prune -> compress -> tour (modeled on
// ahrav-go-gavel's PrometheusMetrics: promauto-registered vecs, one field
// per observable quantity).
type Metrics struct {
	verticesPruned   prometheus.Counter
	compressionRound *prometheus.CounterVec
	toursEmitted     prometheus.Counter
	phaseDuration    *prometheus.HistogramVec
}

// NewMetrics registers and returns a Metrics instance. The collectors are
// registered through promauto against the global Prometheus registry, so a
// second call in the same process panics on the duplicate metric names.
func NewMetrics() *Metrics {
	return &Metrics{
		verticesPruned: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brujin_vertices_pruned_total",
			Help: "Vertex records rejected by the coverage pruner.",
		}),
		compressionRound: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "brujin_compression_rounds_total",
			Help: "Chain-compression rounds run per CompressToFixpoint call.",
		}, []string{"phase"}),
		toursEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "brujin_tours_emitted_total",
			Help: "Euler tours extracted by the assembler.",
		}),
		phaseDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "brujin_phase_duration_seconds",
			Help:    "Wall-clock time spent in each assembler phase.",
			Buckets: prometheus.DefBuckets,
		}, []string{"phase"}),
	}
}

func (m *Metrics) recordPruned(n int) {
	if m == nil {
		return
	}
	m.verticesPruned.Add(float64(n))
}

func (m *Metrics) recordRounds(rounds int) {
	if m == nil {
		return
	}
	m.compressionRound.WithLabelValues("compress").Add(float64(rounds))
}

func (m *Metrics) recordTours(n int) {
	if m == nil {
		return
	}
	m.toursEmitted.Add(float64(n))
}

func (m *Metrics) observePhase(phase string, seconds float64) {
	if m == nil {
		return
	}
	m.phaseDuration.WithLabelValues(phase).Observe(seconds)
}
