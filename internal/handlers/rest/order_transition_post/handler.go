package order_transition_post

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"orderflow/internal/entities"
	"orderflow/internal/handlers/rest/dto"
	"orderflow/internal/pkg/identity"
	"orderflow/internal/service/authz"
	"orderflow/internal/service/claim"
	"orderflow/internal/service/lifecycle"
	"orderflow/internal/service/ordering"
	"orderflow/internal/service/transition"
	"orderflow/pkg/logger"
)

type Handler struct {
	log     handlerLogger
	service Service
}

func New(log handlerLogger, service Service) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:     handlerLog,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	orderID := mux.Vars(r)["id"]

	var transitionDTO dto.OrderTransitionRequest
	err := json.NewDecoder(r.Body).Decode(&transitionDTO)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	orderEntity, err := h.service.Transition(r.Context(), lifecycle.TransitionCommand{
		OrderID: orderID,
		Actor:   actor,
		Status:  entities.OrderStatusType(transitionDTO.Status),
		Reason:  transitionDTO.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrInvalidOrderID),
			errors.Is(err, lifecycle.ErrUnknownStatus),
			errors.Is(err, claim.ErrInvalidOrderID),
			errors.Is(err, claim.ErrInvalidPartnerID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, authz.ErrUnauthorized),
			errors.Is(err, authz.ErrUnknownRole):
			w.WriteHeader(http.StatusForbidden)
		case errors.Is(err, ordering.ErrOrderNotFound),
			errors.Is(err, claim.ErrOrderNotFound),
			errors.Is(err, claim.ErrPartnerNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, transition.ErrInvalidTransition),
			errors.Is(err, claim.ErrAlreadyClaimed),
			errors.Is(err, claim.ErrAlreadyActive):
			w.WriteHeader(http.StatusConflict)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
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
