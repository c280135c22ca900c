package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeDelivered      = "delivered"
	outcomeEmpty          = "empty"
	outcomeTransportError = "transport_error"
	outcomeFormatError    = "format_error"
	outcomeCancelled      = "cancelled"
)

var (
	fetchOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_session_fetches_total",
		Help: "Fetch task invocations by request kind and outcome",
	}, []string{"kind", "outcome"})

	rowsDelivered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_session_rows_delivered_total",
		Help: "Historical and intraday rows delivered to receivers",
	}, []string{"kind"})

	activeRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quote_session_active_requests",
		Help: "Request ids currently registered with a scheduler",
	})
)

func recordFetch(kind, outcome string) {
	fetchOutcomes.WithLabelValues(kind, outcome).Inc()
}
