package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderflow/internal/entities"
	"orderflow/internal/service/ordering"
)

// Controller resolves the one contested transition, ready -> picked_up.
// Any number of partners may race for the same order; exactly one wins and
// the rest observe ErrAlreadyClaimed with no partial state change.
type Controller struct {
	orders    OrderRepository
	partners  PartnerRepository
	txManager TxManager
}

func New(orders OrderRepository, partners PartnerRepository, txManager TxManager) *Controller {
	return &Controller{
		orders:    orders,
		partners:  partners,
		txManager: txManager,
	}
}

// Claim assigns orderID to partnerID. The single-active-delivery check is a
// fast-fail precondition outside the transaction; the decisive check is the
// conditional write inside it.
func (c *Controller) Claim(ctx context.Context, orderID, partnerID string) (*entities.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if strings.TrimSpace(partnerID) == "" {
		return nil, ErrInvalidPartnerID
	}

	partner, err := c.partners.GetByID(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("get partner: %w", err)
	}

	active, err := c.orders.CountActiveByPartner(ctx, partner.ID)
	if err != nil {
		return nil, fmt.Errorf("count active deliveries: %w", err)
	}
	if active > 0 {
		return nil, ErrAlreadyActive
	}

	var claimed *entities.Order
	err = c.txManager.Do(ctx, func(ctx context.Context) error {
		order, won, err := c.orders.ClaimReady(ctx, orderID, partner.ID)
		if err != nil {
			return fmt.Errorf("claim order: %w", err)
		}
		if !won {
			return c.loseReason(ctx, orderID)
		}

		busyStatus := entities.PartnerBusy
		partnerModify := entities.PartnerModify{
			ID:     &partner.ID,
			Status: &busyStatus,
		}
		if _, err := c.partners.Update(ctx, partnerModify); err != nil {
			return fmt.Errorf("update partner status: %w", err)
		}

		claimed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// Release flips the partner of a delivered order back to available.
func (c *Controller) Release(ctx context.Context, partnerID string) error {
	availableStatus := entities.PartnerAvailable
	partnerModify := entities.PartnerModify{
		ID:     &partnerID,
		Status: &availableStatus,
	}
	if _, err := c.partners.Update(ctx, partnerModify); err != nil {
		return fmt.Errorf("release partner: %w", err)
	}
	return nil
}

// loseReason distinguishes a lost race from a stale order id. The losing
// request gets ErrAlreadyClaimed as a plain outcome, never a partial write.
func (c *Controller) loseReason(ctx context.Context, orderID string) error {
	_, err := c.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ordering.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("inspect contested order: %w", err)
	}
	return ErrAlreadyClaimed
}
