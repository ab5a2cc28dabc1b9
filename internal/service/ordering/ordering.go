package ordering

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"orderflow/internal/entities"
)

// TaxRate applied to the item subtotal at creation.
const TaxRate = 0.08

// NewOrderRequest is what the customer-facing placement flow hands over.
type NewOrderRequest struct {
	CustomerRef   string
	RestaurantRef string
	PaymentMethod string
	Items         []entities.OrderItem
}

// Service creates and reads orders. Every order starts in pending_payment
// with pricing computed once; the only status write here is the unpaid-order
// expiry sweep.
type Service struct {
	repository  Repository
	deliveryFee float64
}

func New(repository Repository, deliveryFee float64) *Service {
	return &Service{
		repository:  repository,
		deliveryFee: deliveryFee,
	}
}

func (s *Service) CreateOrder(ctx context.Context, req NewOrderRequest) (*entities.Order, error) {
	if strings.TrimSpace(req.CustomerRef) == "" ||
		strings.TrimSpace(req.RestaurantRef) == "" ||
		strings.TrimSpace(req.PaymentMethod) == "" {
		return nil, ErrMissingRequiredFields
	}
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	for _, item := range req.Items {
		if strings.TrimSpace(item.ItemRef) == "" || item.Quantity <= 0 || item.UnitPrice < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidItem, item.ItemRef)
		}
	}

	order := &entities.Order{
		ID:            uuid.NewString(),
		Status:        entities.OrderPendingPayment,
		CustomerRef:   req.CustomerRef,
		RestaurantRef: req.RestaurantRef,
		Items:         req.Items,
		Pricing:       computePricing(req.Items, s.deliveryFee),
		Payment: entities.Payment{
			Method: req.PaymentMethod,
			Status: entities.PaymentPending,
		},
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.repository.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	order, err := s.repository.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// ListClaimable returns ready orders with no partner yet, for pool sessions
// refreshing their candidate list.
func (s *Service) ListClaimable(ctx context.Context) ([]entities.Order, error) {
	orders, err := s.repository.GetReadyUnassigned(ctx)
	if err != nil {
		return nil, fmt.Errorf("list claimable orders: %w", err)
	}
	return orders, nil
}

// ExpireUnpaid cancels every order that sat in pending_payment longer than
// ttl. It returns the number of orders cancelled.
func (s *Service) ExpireUnpaid(ctx context.Context, ttl time.Duration) (int64, error) {
	cancelled, err := s.repository.CancelStalePendingPayment(ctx, ttl, "payment timeout")
	if err != nil {
		return 0, fmt.Errorf("expire unpaid orders: %w", err)
	}
	return cancelled, nil
}

func computePricing(items []entities.OrderItem, deliveryFee float64) entities.Pricing {
	var subtotal float64
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	tax := subtotal * TaxRate
	return entities.Pricing{
		Subtotal:    subtotal,
		DeliveryFee: deliveryFee,
		Tax:         tax,
		Total:       subtotal + tax + deliveryFee,
	}
}
