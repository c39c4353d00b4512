package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nest_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nest_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	hardwareReservations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nest_hardware_reservations_total",
			Help: "Hardware reservation batches by result",
		},
		[]string{"result"},
	)

	settlementActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nest_settlement_actions_total",
			Help: "Admin settlement actions",
		},
		[]string{"action"},
	)

	seatClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nest_seat_ws_clients",
			Help: "Connected seat map websocket clients",
		},
	)
)

const (
	ReservationCreated  = "created"
	ReservationRejected = "rejected"
)

func TrackRequest(method, route, status string, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func TrackReservation(result string) {
	hardwareReservations.WithLabelValues(result).Inc()
}

func TrackSettlementAction(action string) {
	settlementActions.WithLabelValues(action).Inc()
}

func SeatClientConnected()    { seatClients.Inc() }
func SeatClientDisconnected() { seatClients.Dec() }
