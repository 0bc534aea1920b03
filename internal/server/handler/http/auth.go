package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/auth"
	"github.com/atinyakov/profilekeeper/internal/models"
	"github.com/atinyakov/profilekeeper/internal/service"
)

// AccountService defines the account operations required by the HTTP
// handlers.
type AccountService interface {
	// Signup creates a new account and returns its identifier.
	Signup(ctx context.Context, in service.SignupInput) (string, error)
	// Login verifies credentials and returns the account together with a
	// fresh session token.
	Login(ctx context.Context, username, password string) (*models.Account, string, error)
	// GetProfile returns the principal's account.
	GetProfile(ctx context.Context, principal *auth.Claims) (*models.Account, error)
	// UpdateProfile applies a profile update and returns the updated account.
	UpdateProfile(ctx context.Context, principal *auth.Claims, in service.UpdateInput) (*models.Account, error)
	// UploadProfileImage stores a new profile image and returns its path.
	UploadProfileImage(ctx context.Context, principal *auth.Claims, data []byte, contentType, ext string) (string, error)
	// DeleteProfileImage removes the principal's profile image.
	DeleteProfileImage(ctx context.Context, principal *auth.Claims) error
	// ListAccounts returns every account.
	ListAccounts(ctx context.Context) ([]models.Account, error)
	// GetAccount returns the account with the given identifier.
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	// DeleteAccount hard-deletes the account with the given identifier.
	DeleteAccount(ctx context.Context, id string) error
}

// AuthHandler handles HTTP requests for login.
type AuthHandler struct {
	// AccountService performs the underlying account operations.
	AccountService AccountService
	// TokenTTL bounds the lifetime of the session cookie.
	TokenTTL time.Duration
	// Logger receives unclassified failures.
	Logger *zap.Logger
}

// LoginRequest represents the JSON payload for login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login requests. On success it sets the
// session token as an HttpOnly cookie and also returns it in the JSON
// body for clients using the Authorization header instead.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request")
		return
	}

	account, token, err := h.AccountService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.TokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"user":    account,
		"token":   token,
		"message": "Login successful",
	})
}
