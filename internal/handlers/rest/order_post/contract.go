//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_post_test
package order_post

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/internal/service/authz"
	"orderflow/internal/service/ordering"
	"orderflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CreateOrder(ctx context.Context, req ordering.NewOrderRequest) (*entities.Order, error)
}

type Gate interface {
	AuthorizeStrict(actor entities.Actor, role entities.RoleType, capability authz.Capability) error
}
