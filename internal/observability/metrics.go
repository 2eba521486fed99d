package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Synthesis metrics
	synthesisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readaloud_synthesis_requests_total",
		Help: "Total number of TTS synthesis requests",
	}, []string{"provider", "status"})

	synthesisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "readaloud_synthesis_latency_seconds",
		Help:    "TTS synthesis latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
	})

	synthesisBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readaloud_synthesis_bytes_total",
		Help: "Total bytes of synthesized audio received",
	})

	// Cache metrics
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readaloud_cache_hits_total",
		Help: "Total number of clip cache hits",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readaloud_cache_misses_total",
		Help: "Total number of clip cache misses",
	})

	// Playback metrics
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "readaloud_active_sessions",
		Help: "Number of active read-aloud sessions (0 or 1)",
	})

	sessionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "readaloud_sessions_total",
		Help: "Total number of read-aloud sessions",
	}, []string{"outcome"}) // completed, stopped, failed

	playbackSeconds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "readaloud_playback_seconds_total",
		Help: "Total seconds spent playing audio",
	})
)

// RecordSynthesis records a synthesis request outcome and its latency
func RecordSynthesis(provider, status string, duration time.Duration) {
	synthesisRequests.WithLabelValues(provider, status).Inc()
	synthesisLatency.Observe(duration.Seconds())
}

// RecordSynthesisBytes records the size of a synthesized payload
func RecordSynthesisBytes(n int) {
	synthesisBytes.Add(float64(n))
}

// RecordCacheHit records a clip cache hit
func RecordCacheHit() {
	cacheHits.Inc()
}

// RecordCacheMiss records a clip cache miss
func RecordCacheMiss() {
	cacheMisses.Inc()
}

// SessionStarted marks a read-aloud session as active
func SessionStarted() {
	activeSessions.Inc()
}

// SessionEnded marks a read-aloud session as finished with the given outcome
func SessionEnded(outcome string) {
	activeSessions.Dec()
	sessionsTotal.WithLabelValues(outcome).Inc()
}

// RecordPlayback records time spent playing audio
func RecordPlayback(d time.Duration) {
	playbackSeconds.Add(d.Seconds())
}
