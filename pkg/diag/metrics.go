package diag

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the live diagnostics counters as Prometheus collectors.
// Collectors read the atomics directly, so scraping never contends with the
// streaming path.
type Metrics struct {
	collectors []prometheus.Collector
}

// NewMetrics builds collectors over a Recorder plus the session-owned
// readouts (active flag and completion counter).
func NewMetrics(recorder *Recorder, active func() bool, completions func() uint64) *Metrics {
	activeGauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "daqstream_session_active",
			Help: "1 while a streaming session is active.",
		},
		func() float64 {
			if active() {
				return 1
			}
			return 0
		},
	)
	completionsGauge := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "daqstream_buffer_completions",
			Help: "Buffers delivered this session (reset on start/stop).",
		},
		func() float64 { return float64(completions()) },
	)
	faults := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "daqstream_faults_total",
			Help: "Cumulative watchdog fault counter.",
		},
		func() float64 { return float64(recorder.Faults()) },
	)
	recoveries := prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "daqstream_consecutive_recoveries",
			Help: "Watchdog recoveries since the last command or observed progress.",
		},
		func() float64 { return float64(recorder.ConsecutiveRecoveries()) },
	)
	dropped := prometheus.NewCounterFunc(
		prometheus.CounterOpts{
			Name: "daqstream_diag_events_dropped_total",
			Help: "Diagnostics events discarded on a full mailbox.",
		},
		func() float64 { return float64(recorder.Dropped()) },
	)

	return &Metrics{
		collectors: []prometheus.Collector{
			activeGauge, completionsGauge, faults, recoveries, dropped,
		},
	}
}

// Register registers all collectors on the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
