package payment_timeout

import (
	"context"
	"time"

	"orderflow/pkg/logger"
)

type Service interface {
	ExpireUnpaid(ctx context.Context, ttl time.Duration) (int64, error)
}

// PaymentTimeout cancels orders that never got paid. Orders sit in
// pending_payment at most paymentTTL before the sweep picks them up.
type PaymentTimeout struct {
	log        logger.Logger
	service    Service
	interval   time.Duration
	paymentTTL time.Duration
}

func NewPaymentTimeout(log logger.Logger, service Service, interval, paymentTTL time.Duration) *PaymentTimeout {
	return &PaymentTimeout{
		log:        log,
		service:    service,
		interval:   interval,
		paymentTTL: paymentTTL,
	}
}

func (p *PaymentTimeout) TTL() time.Duration {
	return p.interval
}

func (p *PaymentTimeout) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	cancelled, err := p.service.ExpireUnpaid(ctxWithTimeout, p.paymentTTL)

	if cancelled > 0 {
		p.log.With(
			logger.NewField("cancelled_orders", cancelled),
		).Info("payment timeout sweep")
	}

	return err
}

func (p *PaymentTimeout) Info() string {
	return "payment timeout sweep"
}
