package diag_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acqlab/daqstream/pkg/diag"
	"github.com/acqlab/daqstream/pkg/domain"
)

func TestMetricsTrackRecorder(t *testing.T) {
	recorder := diag.NewRecorder()
	active := true
	completions := uint64(0)

	metrics := diag.NewMetrics(recorder,
		func() bool { return active },
		func() uint64 { return completions },
	)
	registry := prometheus.NewRegistry()
	require.NoError(t, metrics.Register(registry))

	recorder.RecoveryAttempted(context.Background(), true, domain.SamplerHandoffWaitA)
	completions = 42

	families, err := registry.Gather()
	require.NoError(t, err)

	got := map[string]float64{}
	for _, mf := range families {
		got[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue() +
			mf.GetMetric()[0].GetCounter().GetValue()
	}
	assert.Equal(t, float64(1), got["daqstream_session_active"])
	assert.Equal(t, float64(42), got["daqstream_buffer_completions"])
	assert.Equal(t, float64(1), got["daqstream_faults_total"])
	assert.Equal(t, float64(1), got["daqstream_consecutive_recoveries"])
	assert.Equal(t, float64(0), got["daqstream_diag_events_dropped_total"])

	// Double registration of the same name fails loudly.
	assert.Error(t, metrics.Register(registry))
}
