// Package metrics expõe contadores Prometheus do loop de frames e da ponte de inclinação.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores num registro próprio.
type Metrics struct {
	Registry *prometheus.Registry

	Frames       prometheus.Counter
	FrameSeconds prometheus.Histogram
	Tweens       prometheus.Gauge
	Buildings    prometheus.Gauge
	ModelLoad    *prometheus.CounterVec // por resultado: ok / error
	LoadSeconds  prometheus.Histogram
	TiltSamples  prometheus.Counter
	TiltDropped  prometheus.Counter
	TiltClients  prometheus.Gauge
}

// New cria e registra os coletores.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skyline_frames_total",
			Help: "Frames desenhados.",
		}),
		FrameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skyline_frame_seconds",
			Help:    "Duração dos frames informada pelo host.",
			Buckets: []float64{1.0 / 240, 1.0 / 144, 1.0 / 60, 1.0 / 30, 1.0 / 15, 0.25},
		}),
		Tweens: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skyline_active_tweens",
			Help: "Tweens ativos ou aguardando atraso.",
		}),
		Buildings: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skyline_buildings",
			Help: "Prédios na cena.",
		}),
		ModelLoad: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "skyline_model_loads_total",
			Help: "Carregamentos de modelo concluídos.",
		}, []string{"result"}),
		LoadSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "skyline_model_load_seconds",
			Help:    "Tempo entre pedir o modelo e receber o resultado.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		}),
		TiltSamples: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skyline_tilt_samples_total",
			Help: "Amostras de inclinação recebidas pela ponte.",
		}),
		TiltDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "skyline_tilt_samples_dropped_total",
			Help: "Amostras descartadas por fila cheia.",
		}),
		TiltClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "skyline_tilt_clients",
			Help: "Conexões WebSocket abertas na ponte.",
		}),
	}

	m.Registry.MustRegister(
		m.Frames, m.FrameSeconds, m.Tweens, m.Buildings, m.ModelLoad, m.LoadSeconds,
		m.TiltSamples, m.TiltDropped, m.TiltClients,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serve o registro no formato de exposição Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
