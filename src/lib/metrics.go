package lib

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the application collectors on a private registry.
type Metrics struct {
	Registry          *prometheus.Registry
	OrdersCreated     *prometheus.CounterVec
	SubmissionsFailed *prometheus.CounterVec
	ReviewsReceived   prometheus.Counter
	HTTPRequests      *prometheus.CounterVec
}

var metrics *Metrics

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		OrdersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "receh48_orders_created_total",
			Help: "Orders stored, by service type.",
		}, []string{"order_type"}),
		SubmissionsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "receh48_order_submissions_failed_total",
			Help: "Checkout attempts rejected or failed, by reason.",
		}, []string{"reason"}),
		ReviewsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "receh48_reviews_received_total",
			Help: "Reviews accepted for moderation.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "receh48_http_requests_total",
			Help: "HTTP requests by route template and status.",
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.OrdersCreated,
		m.SubmissionsFailed,
		m.ReviewsReceived,
		m.HTTPRequests,
	)
	return m
}

func GetMetrics() *Metrics {
	if metrics != nil {
		return metrics
	}
	metrics = NewMetrics()
	return metrics
}

// RegisterGauge exposes fn as a gauge, e.g. the open cart session count.
func (m *Metrics) RegisterGauge(name, help string, fn func() float64) error {
	return m.Registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: name,
		Help: help,
	}, fn))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
