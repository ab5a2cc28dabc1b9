package orderevents

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var PublishErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "orderevents_publish_errors_total",
		Help: "Total number of failed order.status.changed publishes",
	},
)
