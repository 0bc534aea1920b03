// Package http provides HTTP routing and handlers for the account,
// profile, catalog and admin endpoints.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/service"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes a {"message": ...} JSON body with the given status.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps the service error taxonomy onto HTTP status codes.
// Unclassified failures are logged with detail and surfaced as a generic
// 500 message, leaking nothing internal to the client.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var ve *service.ValidationError
	var dup *service.DuplicateError

	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, service.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.As(err, &dup):
		writeJSON(w, http.StatusConflict, map[string]string{
			"message": dup.Error(),
			"field":   dup.Field,
		})
	default:
		logger.Error("request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
