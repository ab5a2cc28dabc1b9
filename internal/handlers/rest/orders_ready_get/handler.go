package orders_ready_get

import (
	"encoding/json"
	"net/http"

	"orderflow/internal/entities"
	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/pkg/identity"
	"orderflow/internal/service/authz"
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

// ServeHTTP lists unassigned ready orders. The pool is delivery-only:
// admin does not get a bypass here.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if err := h.gate.AuthorizeStrict(actor, entities.RoleDelivery, authz.CapClaimOrder); err != nil {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	orders, err := h.service.ListClaimable(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, dto.NewOrderResponse(&orders[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
