package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"splitpal/internal/auth"
	"splitpal/internal/models"
)

func TestRequireAuth(t *testing.T) {
	manager := auth.NewJWTManager("test-secret-at-least-16-chars", time.Hour)
	token, err := manager.Generate(&models.User{ID: "user-1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	var gotUserID, gotEmail string
	handler := RequireAuth(manager)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotEmail = GetEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", header: token, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}

	if gotUserID != "user-1" || gotEmail != "ada@example.com" {
		t.Errorf("context carried (%q, %q), want (user-1, ada@example.com)", gotUserID, gotEmail)
	}
}

func TestWithUserID(t *testing.T) {
	ctx := WithUserID(t.Context(), "user-9")
	if got := GetUserID(ctx); got != "user-9" {
		t.Errorf("GetUserID = %q, want user-9", got)
	}
}
