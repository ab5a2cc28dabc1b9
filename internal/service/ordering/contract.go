//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=ordering_test
package ordering

import (
	"context"
	"time"

	"orderflow/internal/entities"
)

type Repository interface {
	Create(ctx context.Context, order *entities.Order) (*entities.Order, error)
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	GetReadyUnassigned(ctx context.Context) ([]entities.Order, error)
	CancelStalePendingPayment(ctx context.Context, ttl time.Duration, reason string) (int64, error)
}
