//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=lifecycle_test
package lifecycle

import (
	"context"

	"orderflow/internal/entities"
	"orderflow/internal/service/authz"
	"orderflow/pkg/logger"
)

type OrderRepository interface {
	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	Update(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error)
}

// Gate is the authorization decision point; see internal/service/authz.
type Gate interface {
	Authorize(actor entities.Actor, order *entities.Order, capability authz.Capability) error
	AuthorizeStrict(actor entities.Actor, role entities.RoleType, capability authz.Capability) error
}

type Validator interface {
	Validate(current entities.OrderStatusType, role entities.RoleType, requested entities.OrderStatusType) error
}

// Assigner is the atomic claim controller; the coordinator delegates the one
// contested transition to it and uses Release on delivery completion.
type Assigner interface {
	Claim(ctx context.Context, orderID, partnerID string) (*entities.Order, error)
	Release(ctx context.Context, partnerID string) error
}

// Publisher receives the event list built for a committed status change.
// Publishing is strictly after the write: subscribers must never observe a
// status a fresh fetch would not return.
type Publisher interface {
	Publish(ctx context.Context, events []entities.OrderEvent)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type coordinatorLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
