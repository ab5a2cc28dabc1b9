//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_ready_get_test
package orders_ready_get

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/internal/service/authz"
	"orderflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	ListClaimable(ctx context.Context) ([]entities.Order, error)
}

type Gate interface {
	AuthorizeStrict(actor entities.Actor, role entities.RoleType, capability authz.Capability) error
}
