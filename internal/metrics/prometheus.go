package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus exports prediction events as counters and a latency histogram.
type Prometheus struct {
	predictions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	fallbacks   *prometheus.CounterVec
}

// NewPrometheus registers the prediction collectors on reg.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		predictions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "predictions_total",
				Help: "Total predictions made",
			},
			[]string{"prediction_type", "group", "degraded"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prediction_duration_seconds",
				Help:    "Prediction duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"prediction_type"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prediction_fallbacks_total",
				Help: "Predictions answered by rules instead of a learned model",
			},
			[]string{"prediction_type", "reason"},
		),
	}
}

// Record implements Sink.
func (p *Prometheus) Record(ev Event) {
	p.predictions.WithLabelValues(ev.Type, ev.Label, strconv.FormatBool(ev.Degraded)).Inc()
	p.latency.WithLabelValues(ev.Type).Observe(ev.Latency.Seconds())
	if ev.Degraded {
		p.fallbacks.WithLabelValues(ev.Type, ev.Reason).Inc()
	}
}

// Handler returns the Prometheus metrics HTTP handler for g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
