package healthcheck_head

import (
	"net/http"
	"sync/atomic"
)

// Handler reports liveness to the load balancer. During the drain window it
// answers 503 so new traffic is routed away while in-flight requests finish.
type Handler struct {
	draining *atomic.Bool
}

func New(draining *atomic.Bool) *Handler {
	return &Handler{draining: draining}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	if h.draining.Load() {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
