package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/atinyakov/profilekeeper/internal/auth"
)

func identityProbe(secret []byte) (http.Handler, *string) {
	var gotEmail string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := PrincipalFromContext(r.Context()); p != nil {
			gotEmail = p.Email
		}
		w.WriteHeader(http.StatusOK)
	})
	return WithIdentity(secret)(inner), &gotEmail
}

func TestWithIdentity_BearerHeader(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := auth.IssueToken("a@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	h, gotEmail := identityProbe(secret)
	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *gotEmail != "a@x.com" {
		t.Fatalf("expected principal email %q, got %q", "a@x.com", *gotEmail)
	}
}

func TestWithIdentity_Cookie(t *testing.T) {
	secret := []byte("test-secret")
	tok, err := auth.IssueToken("b@x.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	h, gotEmail := identityProbe(secret)
	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: tok})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *gotEmail != "b@x.com" {
		t.Fatalf("expected principal email %q, got %q", "b@x.com", *gotEmail)
	}
}

func TestWithIdentity_NoToken(t *testing.T) {
	h, gotEmail := identityProbe([]byte("test-secret"))
	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *gotEmail != "" {
		t.Fatalf("expected no principal, got %q", *gotEmail)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("middleware must pass unauthenticated requests through, got status %d", rec.Code)
	}
}

func TestWithIdentity_InvalidToken(t *testing.T) {
	h, gotEmail := identityProbe([]byte("test-secret"))
	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *gotEmail != "" {
		t.Fatalf("expected no principal for invalid token, got %q", *gotEmail)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("middleware must pass invalid tokens through, got status %d", rec.Code)
	}
}

func TestWithIdentity_WrongSecret(t *testing.T) {
	tok, err := auth.IssueToken("c@x.com", []byte("other-secret"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	h, gotEmail := identityProbe([]byte("test-secret"))
	req := httptest.NewRequest("GET", "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if *gotEmail != "" {
		t.Fatalf("expected no principal for wrong-secret token, got %q", *gotEmail)
	}
}

func TestPrincipalFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if p := PrincipalFromContext(req.Context()); p != nil {
		t.Fatalf("expected nil principal, got %+v", p)
	}
}
