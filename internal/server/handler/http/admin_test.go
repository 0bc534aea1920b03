package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestAdminHandler_Initial(t *testing.T) {
	tests := []struct {
		name         string
		url          string
		setupPass    string
		ensureErr    error
		expectedCode int
		wantCalled   bool
	}{
		{
			name:         "missing pass",
			url:          "/api/admin/initial",
			setupPass:    "s3cret",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "wrong pass",
			url:          "/api/admin/initial?pass=nope",
			setupPass:    "s3cret",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "endpoint disabled",
			url:          "/api/admin/initial?pass=s3cret",
			setupPass:    "",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "index creation fails",
			url:          "/api/admin/initial?pass=s3cret",
			setupPass:    "s3cret",
			ensureErr:    errors.New("server selection timeout"),
			expectedCode: http.StatusInternalServerError,
			wantCalled:   true,
		},
		{
			name:         "success",
			url:          "/api/admin/initial?pass=s3cret",
			setupPass:    "s3cret",
			expectedCode: http.StatusOK,
			wantCalled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			h := &AdminHandler{
				EnsureIndexes: func(ctx context.Context) error {
					called = true
					return tt.ensureErr
				},
				SetupPass: tt.setupPass,
				Logger:    zap.NewNop(),
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", tt.url, nil)
			h.Initial(rec, req)

			if rec.Code != tt.expectedCode {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedCode, rec.Code, rec.Body.String())
			}
			if called != tt.wantCalled {
				t.Errorf("EnsureIndexes called = %v, want %v", called, tt.wantCalled)
			}
		})
	}
}
