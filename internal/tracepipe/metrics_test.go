package tracepipe

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/chip/eddecompress"
	"github.com/zkfabric/airtrace/record"
)

func TestPromMetricsRecordsChipRowsAndLookups(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPromMetrics(reg)

	p := NewWithOptions([]chip.MachineAir{eddecompress.New()}, WithMetrics(m))

	shard := record.New(1, nil)
	shard.EdDecompressEvents = []record.EdDecompressEvent{edIdentityEvent(1, 0)}

	_, err := p.GenerateShard(context.Background(), shard)
	require.NoError(t, err)

	families, err := reg.Gather()
	require.NoError(t, err)

	var sawRows, sawLookups bool
	for _, mf := range families {
		switch mf.GetName() {
		case "airtrace_tracepipe_chip_rows_generated_total":
			sawRows = true
			require.Greater(t, metricValue(mf), float64(0))
		case "airtrace_tracepipe_byte_lookups_recorded_total":
			sawLookups = true
			require.GreaterOrEqual(t, metricValue(mf), float64(0))
		}
	}
	require.True(t, sawRows)
	require.True(t, sawLookups)
}

func metricValue(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

func TestNoopMetricsIsHarmless(t *testing.T) {
	var m Metrics = NoopMetrics{}
	require.NotPanics(t, func() {
		m.ObserveChipRows("EdDecompress", 4)
		m.ObserveByteLookupsRecorded("EdDecompress", 3)
	})
}
