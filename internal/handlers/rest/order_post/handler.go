package order_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"orderflow/internal/entities"
	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/pkg/identity"
	"orderflow/internal/service/authz"
	"orderflow/internal/service/ordering"
	"orderflow/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
	gate    Gate
}

func New(log handlerLogger, service Service, gate Gate) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
		gate:    gate,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.gate.AuthorizeStrict(actor, entities.RoleCustomer, authz.CapCreateOrder); err != nil {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var orderCreateDTO dto.OrderCreateRequest
	err := json.NewDecoder(r.Body).Decode(&orderCreateDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	items := make([]entities.OrderItem, 0, len(orderCreateDTO.Items))
	for _, item := range orderCreateDTO.Items {
		items = append(items, entities.OrderItem{
			ItemRef:        item.ItemRef,
			Name:           item.Name,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			Customizations: item.Customizations,
		})
	}

	orderEntity, err := h.service.CreateOrder(r.Context(), ordering.NewOrderRequest{
		CustomerRef:   actor.ID,
		RestaurantRef: orderCreateDTO.RestaurantRef,
		PaymentMethod: orderCreateDTO.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		switch {
		case errors.Is(err, ordering.ErrMissingRequiredFields),
			errors.Is(err, ordering.ErrEmptyItems),
			errors.Is(err, ordering.ErrInvalidItem):
			w.WriteHeader(http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	response := dto.NewOrderResponse(orderEntity)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
