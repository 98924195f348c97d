package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	cacheLookups   *prometheus.CounterVec
	assemblies     *prometheus.CounterVec
	assemblyTime   prometheus.Histogram
	providerErrors *prometheus.CounterVec
	lastScore      *prometheus.GaugeVec
	degraded       prometheus.Counter
	published      *prometheus.CounterVec

	mu      sync.RWMutex
	tracked map[string]struct{}
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on reg, which lets tests use a
// private registry.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		cacheLookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pickrank_cache_lookups_total",
				Help: "Result cache lookups by outcome",
			},
			[]string{"result"},
		),
		assemblies: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pickrank_assemblies_total",
				Help: "Signal assemblies by outcome",
			},
			[]string{"status"},
		),
		assemblyTime: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "pickrank_assembly_duration_seconds",
				Help:    "Duration of one symbol's signal assembly",
				Buckets: prometheus.DefBuckets,
			},
		),
		providerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pickrank_provider_errors_total",
				Help: "Upstream provider failures",
			},
			[]string{"provider"},
		),
		lastScore: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "pickrank_last_score",
				Help: "Last composite score per tracked symbol",
			},
			[]string{"symbol"},
		),
		degraded: f.NewCounter(
			prometheus.CounterOpts{
				Name: "pickrank_degraded_total",
				Help: "Symbols replaced by the unavailable placeholder",
			},
		),
		published: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pickrank_published_messages_total",
				Help: "Messages published to the downstream topic",
			},
			[]string{"topic"},
		),
		tracked: make(map[string]struct{}),
	}
}

// TrackSymbols sets which symbols get a per-symbol score gauge. Scores for
// any other symbol are not exported.
func (r *Recorder) TrackSymbols(symbols []string) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tracked = make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		r.tracked[s] = struct{}{}
	}
	return r
}

func (r *Recorder) RecordCacheResult(hit bool) {
	if hit {
		r.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	r.cacheLookups.WithLabelValues("miss").Inc()
}

// RecordAssembly records one assembly's latency and outcome.
func (r *Recorder) RecordAssembly(_ string, seconds float64, err error) {
	r.assemblyTime.Observe(seconds)
	if err != nil {
		r.assemblies.WithLabelValues("error").Inc()
		return
	}
	r.assemblies.WithLabelValues("ok").Inc()
}

func (r *Recorder) RecordProviderError(provider string) {
	r.providerErrors.WithLabelValues(provider).Inc()
}

func (r *Recorder) RecordScore(symbol string, score float64) {
	r.mu.RLock()
	_, ok := r.tracked[symbol]
	r.mu.RUnlock()
	if ok {
		r.lastScore.WithLabelValues(symbol).Set(score)
	}
}

func (r *Recorder) RecordDegraded(string) {
	r.degraded.Inc()
}

func (r *Recorder) RecordPublished(topic string, n int) {
	r.published.WithLabelValues(topic).Add(float64(n))
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordCacheResult(bool)                {}
func (Nop) RecordAssembly(string, float64, error) {}
func (Nop) RecordProviderError(string)            {}
func (Nop) RecordScore(string, float64)           {}
func (Nop) RecordDegraded(string)                 {}
func (Nop) RecordPublished(string, int)           {}
