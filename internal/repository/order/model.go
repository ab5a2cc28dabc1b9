package order

import "time"

type OrderDB struct {
	ID                   string
	Status               string
	CustomerRef          string
	RestaurantRef        string
	DeliveryPartnerID    *string
	Items                []byte
	Subtotal             float64
	DeliveryFee          float64
	Tax                  float64
	Total                float64
	PaymentMethod        string
	PaymentStatus        string
	PaymentTransactionID *string
	PaidAt               *time.Time
	CreatedAt            time.Time
	ActualDeliveryTime   *time.Time
	CancelledAt          *time.Time
	CancellationReason   *string
}

// itemDB is the jsonb shape of one order line.
type itemDB struct {
	ItemRef        string   `json:"item_ref"`
	Name           string   `json:"name"`
	Quantity       int      `json:"quantity"`
	UnitPrice      float64  `json:"unit_price"`
	Customizations []string `json:"customizations,omitempty"`
}
