package lifecycle

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderflow/internal/entities"
	"orderflow/internal/service/authz"
	"orderflow/pkg/logger"
)

// TransitionCommand is one requested status change.
type TransitionCommand struct {
	OrderID string
	Actor   entities.Actor
	Status  entities.OrderStatusType

	// Reason accompanies a cancellation.
	Reason string
	// PaymentTransaction and PaidAt accompany the payment-completion signal.
	PaymentTransaction string
	PaidAt             *time.Time
}

// Coordinator is the single orchestration point for status changes:
// authorize, validate, persist, then hand the built event list to the
// publisher. Publication happens only after the transaction committed.
type Coordinator struct {
	log       coordinatorLogger
	orders    OrderRepository
	gate      Gate
	validator Validator
	assigner  Assigner
	publisher Publisher
	txManager TxManager
}

func New(
	log coordinatorLogger,
	orders OrderRepository,
	gate Gate,
	validator Validator,
	assigner Assigner,
	publisher Publisher,
	txManager TxManager,
) *Coordinator {
	return &Coordinator{
		log:       log.With(),
		orders:    orders,
		gate:      gate,
		validator: validator,
		assigner:  assigner,
		publisher: publisher,
		txManager: txManager,
	}
}

// Transition applies cmd and returns the updated order. The contested
// ready -> picked_up move from a delivery identity is delegated to the
// assignment controller; everything else is an ordinary guarded write.
func (c *Coordinator) Transition(ctx context.Context, cmd TransitionCommand) (*entities.Order, error) {
	if strings.TrimSpace(cmd.OrderID) == "" {
		return nil, ErrInvalidOrderID
	}
	if !isKnownStatus(cmd.Status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, cmd.Status)
	}

	if cmd.Status == entities.OrderPickedUp && cmd.Actor.Role == entities.RoleDelivery {
		return c.Claim(ctx, cmd.OrderID, cmd.Actor.ID)
	}

	var updated *entities.Order
	err := c.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := c.orders.GetByID(ctx, cmd.OrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}

		if err := c.gate.Authorize(cmd.Actor, order, authz.CapTransitionOrder); err != nil {
			return err
		}
		if err := c.validator.Validate(order.Status, cmd.Actor.Role, cmd.Status); err != nil {
			return err
		}

		if cmd.Actor.Role == entities.RoleAdmin {
			c.log.Warn("admin status override",
				logger.NewField("order", order.ID),
				logger.NewField("admin", cmd.Actor.ID),
				logger.NewField("from", order.Status.String()),
				logger.NewField("to", cmd.Status.String()),
			)
		}

		updated, err = c.orders.Update(ctx, c.buildModify(order, cmd))
		if err != nil {
			return fmt.Errorf("update order: %w", err)
		}

		if updated.Status == entities.OrderDelivered && updated.DeliveryPartnerRef != nil {
			if err := c.assigner.Release(ctx, *updated.DeliveryPartnerRef); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(ctx, buildEvents(updated))
	return updated, nil
}

// Claim routes the contested claim through the assignment controller and
// publishes the picked_up fan-out on success.
func (c *Coordinator) Claim(ctx context.Context, orderID, partnerID string) (*entities.Order, error) {
	order, err := c.assigner.Claim(ctx, orderID, partnerID)
	if err != nil {
		return nil, err
	}

	c.publisher.Publish(ctx, buildEvents(order))
	return order, nil
}

func (c *Coordinator) buildModify(order *entities.Order, cmd TransitionCommand) entities.OrderModify {
	status := cmd.Status
	modify := entities.OrderModify{
		ID:     &order.ID,
		Status: &status,
	}

	switch cmd.Status {
	case entities.OrderPaid:
		completed := entities.PaymentCompleted
		modify.PaymentStatus = &completed

		paidAt := time.Now().UTC()
		if cmd.PaidAt != nil {
			paidAt = *cmd.PaidAt
		}
		modify.PaidAt = &paidAt

		if cmd.PaymentTransaction != "" {
			transaction := cmd.PaymentTransaction
			modify.PaymentTransaction = &transaction
		}

	case entities.OrderDelivered:
		deliveredAt := time.Now().UTC()
		modify.ActualDeliveryTime = &deliveredAt

	case entities.OrderCancelled:
		cancelledAt := time.Now().UTC()
		modify.CancelledAt = &cancelledAt

		reason := cmd.Reason
		if reason == "" {
			reason = fmt.Sprintf("cancelled by %s", cmd.Actor.Role)
		}
		modify.CancellationReason = &reason
	}

	return modify
}

func isKnownStatus(status entities.OrderStatusType) bool {
	switch status {
	case entities.OrderPendingPayment, entities.OrderPaid, entities.OrderPreparing,
		entities.OrderReady, entities.OrderPickedUp, entities.OrderDelivered,
		entities.OrderCancelled, entities.OrderRejected:
		return true
	default:
		return false
	}
}
