package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ============================================================
// Metrics
// ============================================================

type Metrics struct {
	registry *prometheus.Registry

	events   *prometheus.CounterVec
	submits  *prometheus.CounterVec
	imports  *prometheus.CounterVec
	sessions prometheus.Gauge
}

// NewMetrics регистрирует счётчики редактора в собственном реестре,
// чтобы несколько экземпляров (например, в тестах) не конфликтовали.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "editor_events_total",
			Help: "Editor events applied, by event type and outcome.",
		}, []string{"event", "outcome"}),
		submits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "editor_submits_total",
			Help: "Map submissions to the maps service, by result.",
		}, []string{"result"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "editor_imports_total",
			Help: "SVG plan imports, by result.",
		}, []string{"result"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "editor_sessions_active",
			Help: "Open editor sessions.",
		}),
	}

	m.registry.MustRegister(
		m.events,
		m.submits,
		m.imports,
		m.sessions,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler отдаёт метрики в формате Prometheus через fiber.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

func (m *Metrics) observeEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) observeSubmit(result string) {
	if m == nil {
		return
	}
	m.submits.WithLabelValues(result).Inc()
}

func (m *Metrics) observeImport(result string) {
	if m == nil {
		return
	}
	m.imports.WithLabelValues(result).Inc()
}

// SetSessions выставляет число открытых сеансов.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.sessions.Set(float64(n))
}
