package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application collectors. It implements shared.BookingMetrics.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// ReservationsTotal counts reservation operations by outcome
	// (success, replayed, or the lowercased error code).
	ReservationsTotal *prometheus.CounterVec

	LockWaitDuration   *prometheus.HistogramVec
	NotificationsTotal *prometheus.CounterVec
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total number of reservation operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		LockWaitDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "business_lock_wait_seconds",
				Help:    "Time spent acquiring the per-business booking lock",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"status"},
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_total",
				Help: "Notification deliveries by channel and status",
			},
			[]string{"channel", "status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.LockWaitDuration,
		m.NotificationsTotal,
	)

	return m
}

func (m *Metrics) ReservationOutcome(operation, outcome string) {
	m.ReservationsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) LockWait(d time.Duration, acquired bool) {
	status := "acquired"
	if !acquired {
		status = "failed"
	}
	m.LockWaitDuration.WithLabelValues(status).Observe(d.Seconds())
}

func (m *Metrics) NotificationOutcome(channel, status string) {
	m.NotificationsTotal.WithLabelValues(channel, status).Inc()
}
