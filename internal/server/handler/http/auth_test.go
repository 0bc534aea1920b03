package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/profilekeeper/internal/auth"
	"github.com/atinyakov/profilekeeper/internal/models"
	"github.com/atinyakov/profilekeeper/internal/service"
)

// fakeAccountService implements AccountService for testing.
type fakeAccountService struct {
	signupID  string
	signupErr error

	loginAccount *models.Account
	loginToken   string
	loginErr     error

	profile    *models.Account
	profileErr error

	updated   *models.Account
	updateErr error

	uploadPath string
	uploadErr  error

	deleteImageErr error

	accounts []models.Account
	listErr  error

	account    *models.Account
	accountErr error

	deleteErr error
}

func (f *fakeAccountService) Signup(ctx context.Context, in service.SignupInput) (string, error) {
	return f.signupID, f.signupErr
}
func (f *fakeAccountService) Login(ctx context.Context, username, password string) (*models.Account, string, error) {
	return f.loginAccount, f.loginToken, f.loginErr
}
func (f *fakeAccountService) GetProfile(ctx context.Context, principal *auth.Claims) (*models.Account, error) {
	return f.profile, f.profileErr
}
func (f *fakeAccountService) UpdateProfile(ctx context.Context, principal *auth.Claims, in service.UpdateInput) (*models.Account, error) {
	return f.updated, f.updateErr
}
func (f *fakeAccountService) UploadProfileImage(ctx context.Context, principal *auth.Claims, data []byte, contentType, ext string) (string, error) {
	return f.uploadPath, f.uploadErr
}
func (f *fakeAccountService) DeleteProfileImage(ctx context.Context, principal *auth.Claims) error {
	return f.deleteImageErr
}
func (f *fakeAccountService) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return f.accounts, f.listErr
}
func (f *fakeAccountService) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	return f.account, f.accountErr
}
func (f *fakeAccountService) DeleteAccount(ctx context.Context, id string) error {
	return f.deleteErr
}

func TestAuthHandler_Login(t *testing.T) {
	okAccount := &models.Account{Username: "alice", Email: "a@x.com"}

	tests := []struct {
		name         string
		body         string
		service      *fakeAccountService
		expectedCode int
		wantCookie   bool
	}{
		{
			name:         "invalid JSON",
			body:         `not a json`,
			service:      &fakeAccountService{},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "missing fields",
			body:         `{"username":"alice"}`,
			service:      &fakeAccountService{loginErr: &service.ValidationError{Msg: "username and password are required"}},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "bad credentials",
			body:         `{"username":"alice","password":"wrong"}`,
			service:      &fakeAccountService{loginErr: service.ErrInvalidCredentials},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "success",
			body:         `{"username":"alice","password":"secret1"}`,
			service:      &fakeAccountService{loginAccount: okAccount, loginToken: "tok123"},
			expectedCode: http.StatusOK,
			wantCookie:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString(tt.body))
			h := &AuthHandler{AccountService: tt.service, TokenTTL: time.Hour, Logger: zap.NewNop()}
			h.Login(rec, req)
			res := rec.Result()
			defer res.Body.Close()

			if res.StatusCode != tt.expectedCode {
				t.Fatalf("expected status %d, got %d", tt.expectedCode, res.StatusCode)
			}

			if tt.wantCookie {
				var tokenCookie *http.Cookie
				for _, c := range res.Cookies() {
					if c.Name == "token" {
						tokenCookie = c
					}
				}
				if tokenCookie == nil || tokenCookie.Value != "tok123" {
					t.Fatalf("expected token cookie, got %+v", res.Cookies())
				}
				if !tokenCookie.HttpOnly {
					t.Error("token cookie must be HttpOnly")
				}

				var payload struct {
					Token string         `json:"token"`
					User  models.Account `json:"user"`
				}
				if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
					t.Fatalf("decode response: %v", err)
				}
				if payload.Token != "tok123" || payload.User.Username != "alice" {
					t.Errorf("unexpected payload %+v", payload)
				}
			}
		})
	}
}
