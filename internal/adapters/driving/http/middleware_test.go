package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"valid bearer", "Bearer abc123", "abc123"},
		{"lowercase bearer", "bearer abc123", "abc123"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
		{"extra whitespace", "Bearer   abc123  ", "abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetAuthContext(t *testing.T) {
	if got := GetAuthContext(context.Background()); got != nil {
		t.Errorf("GetAuthContext(empty) = %+v, want nil", got)
	}
	if got := GetAuthContext(nil); got != nil { //nolint:staticcheck
		t.Errorf("GetAuthContext(nil) = %+v, want nil", got)
	}

	authCtx := &domain.AuthContext{UserID: "user-1"}
	ctx := context.WithValue(context.Background(), authContextKey, authCtx)
	if got := GetAuthContext(ctx); got != authCtx {
		t.Errorf("GetAuthContext() = %+v", got)
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	handler := NewRecoveryMiddleware().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	handler := NewLoggingMiddleware().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.Code)
	}
}
