package order_get

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
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

	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderEntity, err := h.service.GetOrder(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, ordering.ErrOrderNotFound):
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
		return
	}

	if err := h.gate.Authorize(actor, orderEntity, authz.CapViewOrder); err != nil {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	response := dto.NewOrderResponse(orderEntity)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("encode JSON response")
	}
}
