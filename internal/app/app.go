// Package app assembles the service object graph with google/wire.
package app

import (
	"time"

	"orderflow/internal/handlers/kafka-consumer/payment_completed"
	"orderflow/internal/handlers/rest/order_claim_post"
	"orderflow/internal/handlers/rest/order_get"
	"orderflow/internal/handlers/rest/order_post"
	"orderflow/internal/handlers/rest/order_transition_post"
	"orderflow/internal/handlers/rest/orders_ready_get"
	"orderflow/internal/notify"
	"orderflow/internal/service/authz"
	"orderflow/pkg/background"
)

type (
	SweepInterval time.Duration
	PaymentTTL    time.Duration
	DeliveryFee   float64
)

type Application struct {
	ServiceOrdering   ServiceOrdering
	ServiceLifecycle  ServiceLifecycle
	Gate              *authz.Gate
	Registry          *notify.Registry
	BackgroundWorkers *background.Worker
}

type ServiceOrdering interface {
	order_post.Service
	order_get.Service
	orders_ready_get.Service
}

// ServiceLifecycle backs both transition entry points: the REST handlers and
// the payment-completed Kafka consumer. Both run in the service process so
// their published events reach the one registry holding the live sessions.
type ServiceLifecycle interface {
	order_transition_post.Service
	order_claim_post.Service
	payment_completed.Service
}
