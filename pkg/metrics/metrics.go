package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "videobot"

type Metrics struct {
	generations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Video generation submissions by backend, mode and outcome.",
		}, []string{"backend", "mode", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of a generation including image upload.",
			Buckets:   []float64{5, 15, 30, 60, 120, 240, 480, 900},
		}, []string{"backend", "mode"}),
	}
	reg.MustRegister(m.generations, m.duration)
	return m
}

// ObserveGeneration records one finished submission. outcome is "success",
// "validation", "config" or "remote".
func (m *Metrics) ObserveGeneration(backend, mode, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(backend, mode, outcome).Inc()
	if outcome == "success" || outcome == "remote" {
		m.duration.WithLabelValues(backend, mode).Observe(elapsed.Seconds())
	}
}
