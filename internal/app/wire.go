//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"orderflow/internal/handlers/tasks/payment_timeout"
	"orderflow/internal/notify"
	"orderflow/internal/pkg/config"

	orderRepo "orderflow/internal/repository/order"
	partnerRepo "orderflow/internal/repository/partner"
	"orderflow/internal/service/authz"
	claimService "orderflow/internal/service/claim"
	lifecycleService "orderflow/internal/service/lifecycle"
	orderingService "orderflow/internal/service/ordering"
	"orderflow/internal/service/transition"

	"orderflow/pkg/logger"
	"orderflow/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializeApplication builds the HTTP service object graph (cmd/service).
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSweepInterval,
		providePaymentTTL,
		provideDeliveryFee,

		provideOrderRepository,
		providePartnerRepository,

		authz.NewGate,
		transition.NewValidator,
		provideRegistry,
		providePublisher,

		provideClaimController,
		provideServiceOrdering,
		provideServiceLifecycle,

		providePaymentTimeoutTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrdering), new(*orderingService.Service)),
		wire.Bind(new(ServiceLifecycle), new(*lifecycleService.Coordinator)),

		wire.Bind(new(orderingService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(claimService.OrderRepository), new(*orderRepo.Repository)),
		wire.Bind(new(claimService.PartnerRepository), new(*partnerRepo.Repository)),
		wire.Bind(new(lifecycleService.OrderRepository), new(*orderRepo.Repository)),

		wire.Bind(new(lifecycleService.Gate), new(*authz.Gate)),
		wire.Bind(new(lifecycleService.Validator), new(*transition.Validator)),
		wire.Bind(new(lifecycleService.Assigner), new(*claimService.Controller)),
		wire.Bind(new(lifecycleService.Publisher), new(*notify.Fanout)),

		wire.Bind(new(claimService.TxManager), new(*tx.Manager)),
		wire.Bind(new(lifecycleService.TxManager), new(*tx.Manager)),

		wire.Bind(new(payment_timeout.Service), new(*orderingService.Service)),
	)
	return &Application{}, nil
}
