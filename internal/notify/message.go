package notify

import (
	"time"

	"orderflow/internal/entities"
)

// Message is the wire shape of one broadcast. Data carries the full current
// order so clients re-render from it instead of mutating local state.
type Message struct {
	Type       string       `json:"type"`
	Status     string       `json:"status"`
	Data       OrderPayload `json:"data"`
	OccurredAt string       `json:"occurred_at"`
}

type OrderPayload struct {
	ID                 string         `json:"id"`
	Status             string         `json:"status"`
	CustomerRef        string         `json:"customer_ref"`
	RestaurantRef      string         `json:"restaurant_ref"`
	DeliveryPartnerRef *string        `json:"delivery_partner_ref,omitempty"`
	Items              []ItemPayload  `json:"items"`
	Pricing            PricingPayload `json:"pricing"`
	PaymentStatus      string         `json:"payment_status"`
	CreatedAt          time.Time      `json:"created_at"`
	ActualDeliveryTime *time.Time     `json:"actual_delivery_time,omitempty"`
	CancellationReason *string        `json:"cancellation_reason,omitempty"`
}

type ItemPayload struct {
	ItemRef        string   `json:"item_ref"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      float64  `json:"unit_price"`
	Customizations []string `json:"customizations,omitempty"`
}

type PricingPayload struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

func newMessage(event entities.OrderEvent) Message {
	return Message{
		Type:       string(event.Kind),
		Status:     event.Status.String(),
		Data:       newOrderPayload(event.Order),
		OccurredAt: event.OccurredAt.Format(time.RFC3339),
	}
}

func newOrderPayload(order *entities.Order) OrderPayload {
	items := make([]ItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ItemPayload{
			ItemRef:        item.ItemRef,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Customizations: item.Customizations,
		})
	}

	return OrderPayload{
		ID:                 order.ID,
		Status:             order.Status.String(),
		CustomerRef:        order.CustomerRef,
		RestaurantRef:      order.RestaurantRef,
		DeliveryPartnerRef: order.DeliveryPartnerRef,
		Items:              items,
		Pricing: PricingPayload{
			Subtotal:    order.Pricing.Subtotal,
			DeliveryFee: order.Pricing.DeliveryFee,
			Tax:         order.Pricing.Tax,
			Total:       order.Pricing.Total,
		},
		PaymentStatus:      order.Payment.Status.String(),
		CreatedAt:          order.CreatedAt,
		ActualDeliveryTime: order.ActualDeliveryTime,
		CancellationReason: order.CancellationReason,
	}
}

// controlFrame is what a session may send over the socket: explicit join or
// leave of a per-order channel.
type controlFrame struct {
	Action  string `json:"action"`
	OrderID string `json:"order_id"`
}

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)
