package ws_get

import (
	"net/http"

	"github.com/gorilla/websocket"
	"orderflow/internal/notify"
	"orderflow/internal/pkg/identity"
	"orderflow/pkg/logger"
)

type Handler struct {
	log      handlerLogger
	registry *notify.Registry
	upgrader websocket.Upgrader
}

func New(log handlerLogger, registry *notify.Registry) *Handler {
	handlerLog := log.With()

	return &Handler{
		log:      handlerLog,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// ServeHTTP upgrades the connection and parks it in the registry. Browsers
// cannot set headers on a WebSocket handshake, so identity may also arrive
// as query parameters.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity.FromRequest(r)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
		).Error("upgrade websocket connection")
		return
	}

	notify.NewSession(h.registry, conn, actor)

	h.log.With(
		logger.NewField("identity_id", actor.ID),
		logger.NewField("role", actor.Role),
	).Info("websocket session opened")
}
