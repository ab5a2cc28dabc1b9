package entities

import "time"

// ChannelKind names a logical audience of the notification fan-out.
type ChannelKind string

const (
	ChannelUser         ChannelKind = "user"
	ChannelRestaurant   ChannelKind = "restaurant"
	ChannelOrder        ChannelKind = "order"
	ChannelDeliveryPool ChannelKind = "delivery-pool"
)

// Channel is a single publish/subscribe destination. The delivery pool is
// shared, so its key is empty.
type Channel struct {
	Kind ChannelKind
	Key  string
}

func UserChannel(id string) Channel       { return Channel{Kind: ChannelUser, Key: id} }
func RestaurantChannel(id string) Channel { return Channel{Kind: ChannelRestaurant, Key: id} }
func OrderChannel(id string) Channel      { return Channel{Kind: ChannelOrder, Key: id} }
func DeliveryPoolChannel() Channel        { return Channel{Kind: ChannelDeliveryPool} }

type OrderEventKind string

const (
	// EventOrderPlaced tells a restaurant a freshly paid order needs acting on.
	EventOrderPlaced OrderEventKind = "order.placed"
	// EventOrderClaimable tells the delivery pool an order became claimable.
	EventOrderClaimable OrderEventKind = "order.claimable"
	// EventOrderStatus is a plain status refresh cue.
	EventOrderStatus OrderEventKind = "order.status"
	// EventOrderDelivered is terminal and triggers the client review prompt.
	EventOrderDelivered OrderEventKind = "order.delivered"
)

// OrderEvent is one routed broadcast: the full current order plus its new
// status, addressed to the channels that care. Subscribers treat it as a cue
// to re-render, never as a mutation instruction.
type OrderEvent struct {
	Kind       OrderEventKind
	Status     OrderStatusType
	Order      *Order
	Channels   []Channel
	OccurredAt time.Time
}
