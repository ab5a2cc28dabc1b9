package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/gateway/kafka/orderevents"
	"orderflow/internal/handlers/tasks/payment_timeout"
	"orderflow/internal/notify"
	"orderflow/internal/pkg/config"

	orderRepo "orderflow/internal/repository/order"
	partnerRepo "orderflow/internal/repository/partner"
	claimService "orderflow/internal/service/claim"
	lifecycleService "orderflow/internal/service/lifecycle"
	orderingService "orderflow/internal/service/ordering"

	"orderflow/pkg/background"
	"orderflow/pkg/logger"
	"orderflow/pkg/querier"
	"orderflow/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func providePartnerRepository(querier *querier.Querier) *partnerRepo.Repository {
	return partnerRepo.New(querier)
}

func provideRegistry(log logger.Logger) *notify.Registry {
	return notify.NewRegistry(log)
}

// providePublisher composes the in-process WebSocket fan-out with the
// optional Kafka mirror of status changes.
func providePublisher(log logger.Logger, cfg *config.Config, registry *notify.Registry) (*notify.Fanout, error) {
	if !cfg.Kafka.ProducerEnabled {
		return notify.NewFanout(registry), nil
	}

	brokers := strings.Split(cfg.Kafka.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	producer, err := orderevents.New(log, brokers, cfg.Kafka.Sarama.Version, cfg.Kafka.ProducerTopic)
	if err != nil {
		return nil, fmt.Errorf("order events producer: %w", err)
	}
	return notify.NewFanout(registry, producer), nil
}

func provideClaimController(
	orders claimService.OrderRepository,
	partners claimService.PartnerRepository,
	txManager claimService.TxManager,
) *claimService.Controller {
	return claimService.New(orders, partners, txManager)
}

func provideServiceOrdering(
	repository orderingService.Repository,
	deliveryFee DeliveryFee,
) *orderingService.Service {
	return orderingService.New(repository, float64(deliveryFee))
}

func provideServiceLifecycle(
	log logger.Logger,
	orders lifecycleService.OrderRepository,
	gate lifecycleService.Gate,
	validator lifecycleService.Validator,
	assigner lifecycleService.Assigner,
	publisher lifecycleService.Publisher,
	txManager lifecycleService.TxManager,
) *lifecycleService.Coordinator {
	return lifecycleService.New(log, orders, gate, validator, assigner, publisher, txManager)
}

func provideSweepInterval(cfg *config.Config) SweepInterval {
	return SweepInterval(cfg.Tasks.PaymentSweepInterval)
}

func providePaymentTTL(cfg *config.Config) PaymentTTL {
	return PaymentTTL(cfg.Tasks.PaymentTTL)
}

func provideDeliveryFee(cfg *config.Config) DeliveryFee {
	return DeliveryFee(cfg.Pricing.DeliveryFee)
}

func providePaymentTimeoutTask(
	log logger.Logger,
	orderingSvc payment_timeout.Service,
	interval SweepInterval,
	paymentTTL PaymentTTL,
) *payment_timeout.PaymentTimeout {
	return payment_timeout.NewPaymentTimeout(log, orderingSvc, time.Duration(interval), time.Duration(paymentTTL))
}

func provideTaskList(
	paymentTimeoutTask *payment_timeout.PaymentTimeout,
) []background.Task {
	return []background.Task{
		paymentTimeoutTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
