package order_claim_post

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

// ServeHTTP claims a ready order for the calling delivery partner. Exactly
// one concurrent caller wins; everyone else gets 409.
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

	orderID := mux.Vars(r)["id"]

	orderEntity, err := h.service.Claim(r.Context(), orderID, actor.ID)
	if err != nil {
		switch {
		case errors.Is(err, claim.ErrInvalidOrderID),
			errors.Is(err, claim.ErrInvalidPartnerID):
			w.WriteHeader(http.StatusBadRequest)
		case errors.Is(err, claim.ErrOrderNotFound),
			errors.Is(err, claim.ErrPartnerNotFound):
			w.WriteHeader(http.StatusNotFound)
		case errors.Is(err, claim.ErrAlreadyClaimed),
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
