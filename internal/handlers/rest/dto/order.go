// Package dto holds the request/response shapes of the REST surface.
package dto

import (
	"time"

	"orderflow/internal/entities"
)

type OrderItem struct {
	ItemRef        string   `json:"item_ref"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      float64  `json:"unit_price"`
	Customizations []string `json:"customizations,omitempty"`
}

type Pricing struct {
	Subtotal    float64 `json:"subtotal"`
	DeliveryFee float64 `json:"delivery_fee"`
	Tax         float64 `json:"tax"`
	Total       float64 `json:"total"`
}

type Payment struct {
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

type OrderResponse struct {
	ID                 string      `json:"id"`
	Status             string      `json:"status"`
	CustomerRef        string      `json:"customer_ref"`
	RestaurantRef      string      `json:"restaurant_ref"`
	DeliveryPartnerRef *string     `json:"delivery_partner_ref,omitempty"`
	Items              []OrderItem `json:"items"`
	Pricing            Pricing     `json:"pricing"`
	Payment            Payment     `json:"payment"`
	CreatedAt          time.Time   `json:"created_at"`
	ActualDeliveryTime *time.Time  `json:"actual_delivery_time,omitempty"`
	CancelledAt        *time.Time  `json:"cancelled_at,omitempty"`
	CancellationReason *string     `json:"cancellation_reason,omitempty"`
}

func NewOrderResponse(order *entities.Order) OrderResponse {
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ItemRef:        item.ItemRef,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Customizations: item.Customizations,
		})
	}

	return OrderResponse{
		ID:                 order.ID,
		Status:             order.Status.String(),
		CustomerRef:        order.CustomerRef,
		RestaurantRef:      order.RestaurantRef,
		DeliveryPartnerRef: order.DeliveryPartnerRef,
		Items:              items,
		Pricing: Pricing{
			Subtotal:    order.Pricing.Subtotal,
			DeliveryFee: order.Pricing.DeliveryFee,
			Tax:         order.Pricing.Tax,
			Total:       order.Pricing.Total,
		},
		Payment: Payment{
			Method:        order.Payment.Method,
			Status:        order.Payment.Status.String(),
			TransactionID: order.Payment.TransactionID,
			PaidAt:        order.Payment.PaidAt,
		},
		CreatedAt:          order.CreatedAt,
		ActualDeliveryTime: order.ActualDeliveryTime,
		CancelledAt:        order.CancelledAt,
		CancellationReason: order.CancellationReason,
	}
}

type OrderCreateRequest struct {
	RestaurantRef string      `json:"restaurant_ref"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
}

type OrderTransitionRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}
