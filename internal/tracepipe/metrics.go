package tracepipe

// metrics.go mirrors pkg/metrics.go's metricsSink pattern (interface plus a
// real Prometheus implementation and a no-op default) for the counters
// Pipeline.GenerateShard can observe: rows generated per chip and byte
// lookups merged per shard, both labeled by chip name the way the teacher
// labels its own counters by shard.
//
// © 2025 arena-cache authors. MIT License.

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the counter sink Pipeline reports to. NoopMetrics{} is the
// zero-value default; PromMetrics wires real Prometheus counters.
type Metrics interface {
	ObserveChipRows(chip string, rows int)
	ObserveByteLookupsRecorded(chip string, n uint64)
}

// NoopMetrics discards every observation: the default for New, and for
// NewWithOptions when no WithMetrics option is given.
type NoopMetrics struct{}

func (NoopMetrics) ObserveChipRows(string, int)            {}
func (NoopMetrics) ObserveByteLookupsRecorded(string, uint64) {}

// PromMetrics records chip trace statistics to a Prometheus registry.
type PromMetrics struct {
	rows    *prometheus.CounterVec
	lookups *prometheus.CounterVec
}

// NewPromMetrics registers and returns a PromMetrics against reg, following
// pkg/metrics.go's construction style: one CounterVec per counter, labeled by
// chip name (+checklabels: "chip" is the only label on either vector).
func NewPromMetrics(reg *prometheus.Registry) *PromMetrics {
	m := &PromMetrics{
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airtrace",
			Subsystem: "tracepipe",
			Name:      "chip_rows_generated_total",
			Help:      "Rows generated by a chip's trace, summed across shards.",
		}, []string{"chip"}),
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "airtrace",
			Subsystem: "tracepipe",
			Name:      "byte_lookups_recorded_total",
			Help:      "Byte-lookup multiplicity recorded by a chip's trace generation.",
		}, []string{"chip"}),
	}
	reg.MustRegister(m.rows, m.lookups)
	return m
}

func (m *PromMetrics) ObserveChipRows(chip string, rows int) {
	m.rows.WithLabelValues(chip).Add(float64(rows))
}

func (m *PromMetrics) ObserveByteLookupsRecorded(chip string, n uint64) {
	m.lookups.WithLabelValues(chip).Add(float64(n))
}
