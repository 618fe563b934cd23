package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coursia/authkit/account"
	"github.com/coursia/authkit/token"
)

func newTestManager(t *testing.T) *token.Manager {
	t.Helper()

	m, err := token.NewManager(token.Config{
		TTL:    time.Hour,
		Secret: []byte("middleware-test-secret"),
		Issuer: "coursia",
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return m
}

func issueFor(t *testing.T, m *token.Manager, email string) string {
	t.Helper()

	u := account.NewUser("Test", email, account.RoleStudent, account.ProviderEmail)
	raw, err := m.Issue(u)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	return raw
}

func TestRequireTokenInjectsClaims(t *testing.T) {
	m := newTestManager(t)
	raw := issueFor(t, m, "a@y.dev")

	var gotEmail string
	handler := RequireToken(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			t.Fatal("expected claims in context")
		}
		gotEmail = claims.Email
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotEmail != "a@y.dev" {
		t.Fatalf("expected claims email, got %q", gotEmail)
	}
}

func TestRequireTokenRejects(t *testing.T) {
	m := newTestManager(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "empty bearer", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.token"},
	}

	handler := RequireToken(m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequireTokenRejectsForeignSignature(t *testing.T) {
	m := newTestManager(t)

	other, err := token.NewManager(token.Config{
		TTL:    time.Hour,
		Secret: []byte("some-other-secret"),
		Issuer: "coursia",
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	raw := issueFor(t, other, "a@y.dev")

	handler := RequireToken(m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
