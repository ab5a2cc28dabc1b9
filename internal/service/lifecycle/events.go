package lifecycle

import (
	"time"

	"orderflow/internal/entities"
)

// buildEvents is the status -> audience routing table. Only the owning
// restaurant hears about a paid order, and the delivery pool only about
// claimable ones.
func buildEvents(order *entities.Order) []entities.OrderEvent {
	now := time.Now().UTC()

	event := func(kind entities.OrderEventKind, channels ...entities.Channel) entities.OrderEvent {
		return entities.OrderEvent{
			Kind:       kind,
			Status:     order.Status,
			Order:      order,
			Channels:   channels,
			OccurredAt: now,
		}
	}

	switch order.Status {
	case entities.OrderPaid:
		return []entities.OrderEvent{
			event(entities.EventOrderPlaced,
				entities.RestaurantChannel(order.RestaurantRef),
			),
		}
	case entities.OrderPreparing:
		return []entities.OrderEvent{
			event(entities.EventOrderStatus,
				entities.RestaurantChannel(order.RestaurantRef),
				entities.UserChannel(order.CustomerRef),
				entities.OrderChannel(order.ID),
			),
		}
	case entities.OrderReady:
		return []entities.OrderEvent{
			event(entities.EventOrderClaimable,
				entities.DeliveryPoolChannel(),
				entities.RestaurantChannel(order.RestaurantRef),
				entities.UserChannel(order.CustomerRef),
				entities.OrderChannel(order.ID),
			),
		}
	case entities.OrderPickedUp:
		return []entities.OrderEvent{
			event(entities.EventOrderStatus,
				entities.UserChannel(order.CustomerRef),
				entities.OrderChannel(order.ID),
			),
		}
	case entities.OrderDelivered:
		return []entities.OrderEvent{
			event(entities.EventOrderDelivered,
				entities.UserChannel(order.CustomerRef),
				entities.OrderChannel(order.ID),
			),
		}
	case entities.OrderCancelled:
		return []entities.OrderEvent{
			event(entities.EventOrderStatus,
				entities.UserChannel(order.CustomerRef),
				entities.RestaurantChannel(order.RestaurantRef),
				entities.OrderChannel(order.ID),
			),
		}
	case entities.OrderRejected:
		return []entities.OrderEvent{
			event(entities.EventOrderStatus,
				entities.UserChannel(order.CustomerRef),
				entities.OrderChannel(order.ID),
			),
		}
	default:
		return nil
	}
}
