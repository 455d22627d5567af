package record

// metrics.go mirrors pkg/metrics.go from the teacher almost verbatim in
// shape: a thin abstraction over Prometheus so that record-level sharding
// can be used with or without metrics. When the caller passes a
// *prometheus.Registry (via NewPromShardMetrics), we create labeled metrics
// and expose them via the registry; otherwise a no-op sink is used and the
// hot path does not pay for metric updates.
//
// © 2025 arena-cache authors. MIT License.

import "github.com/prometheus/client_golang/prometheus"

// PromShardMetrics implements ShardMetrics (shard.go) by recording into
// Prometheus counters/histograms, labeled by event family the same way the
// teacher labels every metric by shard.
type PromShardMetrics struct {
	droppedChunks  *prometheus.CounterVec
	shardsProduced prometheus.Histogram
}

// NewPromShardMetrics registers airtrace's sharding metrics on reg and
// returns a ShardMetrics implementation backed by them.
func NewPromShardMetrics(reg *prometheus.Registry) *PromShardMetrics {
	m := &PromShardMetrics{
		droppedChunks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airtrace",
			Name:      "sharding_dropped_chunks_total",
			Help:      "Number of bulk-distribution chunks dropped because there were more chunks than CPU-derived shards.",
		}, []string{"family"}),
		shardsProduced: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "airtrace",
			Name:      "shards_produced",
			Help:      "Number of output shards produced per ExecutionRecord.Shard call.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
	reg.MustRegister(m.droppedChunks, m.shardsProduced)
	return m
}

func (m *PromShardMetrics) IncDroppedChunks(family string, n int) {
	if n <= 0 {
		return
	}
	m.droppedChunks.WithLabelValues(family).Add(float64(n))
}

func (m *PromShardMetrics) ObserveShardsProduced(n int) {
	m.shardsProduced.Observe(float64(n))
}
