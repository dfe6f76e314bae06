package server

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/isitreallyalive/beacon/protocol"
	"github.com/isitreallyalive/beacon/world"
)

// Metrics holds the gauges and histograms the metrics system updates once
// per tick, after reap has settled the world for this pass. Each Metrics
// owns a private Registry rather than registering against
// prometheus.DefaultRegisterer, so that constructing more than one Server
// in a process (as the test suite does) never collides on a shared global.
// A process wanting to expose these mounts promhttp.HandlerFor(m.Registry, ...)
// somewhere.
type Metrics struct {
	Registry *prometheus.Registry

	connectionsByState *prometheus.GaugeVec
	tickDuration       prometheus.Histogram
}

func newMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		connectionsByState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "beacon",
			Name:      "connections",
			Help:      "Number of connections currently in each protocol state.",
		}, []string{"state"}),
		tickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "beacon",
			Name:      "tick_duration_seconds",
			Help:      "Wall time spent running one tick's schedule.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.Registry.MustRegister(m.connectionsByState, m.tickDuration)
	return m
}

var allStates = []protocol.State{
	protocol.Handshake,
	protocol.Status,
	protocol.Login,
	protocol.Transfer,
	protocol.Configuration,
	protocol.Play,
}

// observe runs the metrics system: it records the current per-state
// connection counts. It never mutates the world.
func (m *Metrics) observe(w *world.World) {
	for _, s := range allStates {
		m.connectionsByState.WithLabelValues(s.String()).Set(float64(w.CountByState(s)))
	}
}
