//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=claim_test
package claim

import (
	"context"

	"orderflow/internal/entities"
)

type OrderRepository interface {
	// ClaimReady is the one conditional write of the system: it moves the
	// order to picked_up and sets the partner ref only if, at commit time,
	// the order is still ready and unassigned. It reports whether the write
	// landed.
	ClaimReady(ctx context.Context, orderID, partnerID string) (*entities.Order, bool, error)

	GetByID(ctx context.Context, orderID string) (*entities.Order, error)
	CountActiveByPartner(ctx context.Context, partnerID string) (int64, error)
}

type PartnerRepository interface {
	GetByID(ctx context.Context, partnerID string) (*entities.DeliveryPartner, error)
	Update(ctx context.Context, partnerModify entities.PartnerModify) (*entities.DeliveryPartner, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
