package entities

import "time"

type Order struct {
	ID                 string
	Status             OrderStatusType
	CustomerRef        string
	RestaurantRef      string
	DeliveryPartnerRef *string
	Items              []OrderItem
	Pricing            Pricing
	Payment            Payment
	CreatedAt          time.Time
	ActualDeliveryTime *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
}

type OrderStatusType string

const (
	OrderPendingPayment OrderStatusType = "pending_payment"
	OrderPaid           OrderStatusType = "paid"
	OrderPreparing      OrderStatusType = "preparing"
	OrderReady          OrderStatusType = "ready"
	OrderPickedUp       OrderStatusType = "picked_up"
	OrderDelivered      OrderStatusType = "delivered"
	OrderCancelled      OrderStatusType = "cancelled"
	OrderRejected       OrderStatusType = "rejected"
)

func (s OrderStatusType) String() string {
	return string(s)
}

// IsTerminal reports whether no further transitions are permitted.
func (s OrderStatusType) IsTerminal() bool {
	switch s {
	case OrderDelivered, OrderCancelled, OrderRejected:
		return true
	default:
		return false
	}
}

type OrderItem struct {
	ItemRef        string
	Name           string
	Quantity       int
	UnitPrice      float64
	Customizations []string
}

type Pricing struct {
	Subtotal    float64
	DeliveryFee float64
	Tax         float64
	Total       float64
}

type Payment struct {
	Method        string
	Status        PaymentStatusType
	TransactionID *string
	PaidAt        *time.Time
}

type PaymentStatusType string

const (
	PaymentPending   PaymentStatusType = "pending"
	PaymentCompleted PaymentStatusType = "completed"
	PaymentFailed    PaymentStatusType = "failed"
)

func (s PaymentStatusType) String() string {
	return string(s)
}

// OrderModify carries the optional fields of a single status write.
// Nil fields are left untouched by the repository.
type OrderModify struct {
	ID                 *string
	Status             *OrderStatusType
	DeliveryPartnerRef *string
	PaymentStatus      *PaymentStatusType
	PaymentTransaction *string
	PaidAt             *time.Time
	ActualDeliveryTime *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
}
