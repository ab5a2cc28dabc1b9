package order

import (
	"encoding/json"
	"fmt"

	"orderflow/internal/entities"
)

func ToDomain(model *OrderDB) (*entities.Order, error) {
	items, err := itemsToDomain(model.Items)
	if err != nil {
		return nil, err
	}

	return &entities.Order{
		ID:                 model.ID,
		Status:             entities.OrderStatusType(model.Status),
		CustomerRef:        model.CustomerRef,
		RestaurantRef:      model.RestaurantRef,
		DeliveryPartnerRef: model.DeliveryPartnerID,
		Items:              items,
		Pricing: entities.Pricing{
			Subtotal:    model.Subtotal,
			DeliveryFee: model.DeliveryFee,
			Tax:         model.Tax,
			Total:       model.Total,
		},
		Payment: entities.Payment{
			Method:        model.PaymentMethod,
			Status:        entities.PaymentStatusType(model.PaymentStatus),
			TransactionID: model.PaymentTransactionID,
			PaidAt:        model.PaidAt,
		},
		CreatedAt:          model.CreatedAt,
		ActualDeliveryTime: model.ActualDeliveryTime,
		CancelledAt:        model.CancelledAt,
		CancellationReason: model.CancellationReason,
	}, nil
}

func itemsFromDomain(items []entities.OrderItem) ([]byte, error) {
	models := make([]itemDB, 0, len(items))
	for _, item := range items {
		models = append(models, itemDB{
			ItemRef:        item.ItemRef,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Customizations: item.Customizations,
		})
	}

	raw, err := json.Marshal(models)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}
	return raw, nil
}

func itemsToDomain(raw []byte) ([]entities.OrderItem, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var models []itemDB
	if err := json.Unmarshal(raw, &models); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}

	items := make([]entities.OrderItem, 0, len(models))
	for _, model := range models {
		items = append(items, entities.OrderItem{
			ItemRef:        model.ItemRef,
			Name:           model.Name,
			Quantity:       model.Quantity,
			UnitPrice:      model.UnitPrice,
			Customizations: model.Customizations,
		})
	}
	return items, nil
}
