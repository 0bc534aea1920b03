package http

import (
	"context"
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"
)

// AdminHandler handles administrative setup requests.
type AdminHandler struct {
	// EnsureIndexes provisions the unique indexes the account model
	// relies on.
	EnsureIndexes func(ctx context.Context) error
	// SetupPass guards the endpoint; an empty value disables it.
	SetupPass string
	// Logger receives unclassified failures.
	Logger *zap.Logger
}

// Initial handles GET /api/admin/initial?pass=... requests, creating the
// unique username and email indexes. The endpoint is idempotent.
func (h *AdminHandler) Initial(w http.ResponseWriter, r *http.Request) {
	challenge := r.URL.Query().Get("pass")
	if challenge == "" {
		writeMessage(w, http.StatusBadRequest, "invalid usage")
		return
	}

	if h.SetupPass == "" ||
		subtle.ConstantTimeCompare([]byte(challenge), []byte(h.SetupPass)) != 1 {
		writeMessage(w, http.StatusBadRequest, "admin password incorrect")
		return
	}

	if err := h.EnsureIndexes(r.Context()); err != nil {
		h.Logger.Error("ensure indexes failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeMessage(w, http.StatusOK, "indexes ensured")
}
