package http

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/middleware"
	"github.com/atinyakov/profilekeeper/internal/service"
)

// maxUploadBytes bounds the whole multipart request body: the image
// ceiling plus headroom for the multipart framing.
const maxUploadBytes = service.MaxImageSize + 1<<20

// AccountHandler handles HTTP requests for signup, account management and
// profile operations.
type AccountHandler struct {
	// AccountService performs the underlying account operations.
	AccountService AccountService
	// Logger receives unclassified failures.
	Logger *zap.Logger
}

// SignupRequest represents the JSON payload for account creation.
type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Signup handles POST /api/user requests. On success it returns the new
// account's identifier; a taken username or email yields 409 naming the
// colliding field.
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	id, err := h.AccountService.Signup(r.Context(), service.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// List handles GET /api/user requests, returning every account with
// passwords stripped.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.AccountService.ListAccounts(r.Context())
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// GetByID handles GET /api/user/{id} requests.
func (h *AccountHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	account, err := h.AccountService.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// DeleteByID handles DELETE /api/user/{id} requests, hard-deleting the
// account.
func (h *AccountHandler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	if err := h.AccountService.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deletedCount": 1})
}

// GetProfile handles GET /api/user/profile requests for the authenticated
// principal.
func (h *AccountHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	account, err := h.AccountService.GetProfile(r.Context(), principal)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// UpdateRequest represents the JSON payload for a profile update.
// Omitted name and email fields are written blank: blank clears the
// stored value.
type UpdateRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// UpdateProfile handles PUT /api/user/profile requests.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	account, err := h.AccountService.UpdateProfile(r.Context(), principal, service.UpdateInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated successfully",
		"user":    account,
	})
}

// UploadImage handles POST /api/user/profile-image requests carrying a
// multipart form with a "file" field.
func (h *AccountHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid form data")
		return
	}

	path, err := h.AccountService.UploadProfileImage(r.Context(), principal, data,
		header.Header.Get("Content-Type"), filepath.Ext(header.Filename))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": path})
}

// DeleteImage handles DELETE /api/user/profile-image requests.
func (h *AccountHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalFromContext(r.Context())

	if err := h.AccountService.DeleteProfileImage(r.Context(), principal); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "OK")
}
