//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_completed_test
package payment_completed

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/internal/service/lifecycle"
	"orderflow/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	Transition(ctx context.Context, cmd lifecycle.TransitionCommand) (*entities.Order, error)
}
