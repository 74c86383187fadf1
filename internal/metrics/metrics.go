// Package metrics exposes frame and session counters in Prometheus format.
//
// Metrics:
//   - tileview_frames_total: counter
//   - tileview_tiles_drawn_total: counter
//   - tileview_frame_draw_seconds: histogram
//   - tileview_sessions_active: gauge
//   - tileview_sessions_total: counter
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tileview"

// Metrics holds the viewer's collectors in a private registry, so several
// instances (tests, one per server) never collide. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	tilesDrawn    prometheus.Counter
	drawSeconds   prometheus.Histogram
	sessionsLive  prometheus.Gauge
	sessionsTotal prometheus.Counter
}

// New creates and registers the viewer metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames drawn across all sessions.",
		}),
		tilesDrawn: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tiles_drawn_total",
			Help:      "Tiles that survived viewport culling and were drawn.",
		}),
		drawSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_draw_seconds",
			Help:      "Time spent culling and painting one frame.",
			Buckets:   []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.0166, 0.033, 0.066},
		}),
		sessionsLive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Viewer sessions currently running.",
		}),
		sessionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_total",
			Help:      "Viewer sessions started.",
		}),
	}

	m.registry.MustRegister(m.frames, m.tilesDrawn, m.drawSeconds, m.sessionsLive, m.sessionsTotal)
	return m
}

// ObserveFrame records one drawn frame.
func (m *Metrics) ObserveFrame(tiles int, took time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.tilesDrawn.Add(float64(tiles))
	m.drawSeconds.Observe(took.Seconds())
}

// SessionStarted marks a new viewer session.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessionsLive.Inc()
	m.sessionsTotal.Inc()
}

// SessionEnded marks a viewer session as finished.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.sessionsLive.Dec()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
