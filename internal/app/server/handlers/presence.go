package handlers

import (
	"context"
	"net/http"
)

// PresenceLister lists online users across instances.
type PresenceLister interface {
	Cluster(ctx context.Context) ([]string, error)
}

type PresenceHandler struct {
	presence PresenceLister
}

func NewPresenceHandler(presence PresenceLister) *PresenceHandler {
	return &PresenceHandler{presence: presence}
}

func (h *PresenceHandler) Online(w http.ResponseWriter, r *http.Request) {
	users, err := h.presence.Cluster(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"online": users})
}

func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
