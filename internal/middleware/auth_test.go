package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"omnislide/internal/domain"
	"omnislide/internal/domain/models"
	"omnislide/internal/httputil"
)

// fakeVerifier accepts one known token and records calls.
type fakeVerifier struct {
	token  string
	claims *models.SupabaseClaims
	calls  int
}

func (f *fakeVerifier) VerifyToken(tokenString string) (*models.SupabaseClaims, error) {
	f.calls++
	if tokenString == f.token {
		return f.claims, nil
	}
	return nil, domain.ErrUnauthorized
}

func (f *fakeVerifier) Close() error { return nil }

func testClaims() *models.SupabaseClaims {
	return &models.SupabaseClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		Email:            "pat@example.com",
		Role:             "authenticated",
		UserMetadata: map[string]interface{}{
			"display_name": "Pat",
		},
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	verifier := &fakeVerifier{token: "good-token", claims: testClaims()}

	var gotID, gotEmail, gotName string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = httputil.GetUserID(r)
		gotEmail = httputil.GetUserEmail(r)
		gotName = httputil.GetUserDisplayName(r)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	r.Header.Set("Authorization", "Bearer good-token")

	AuthMiddleware(verifier)(next).ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotID != "user-1" {
		t.Errorf("user id in context = %q, want user-1", gotID)
	}
	if gotEmail != "pat@example.com" {
		t.Errorf("email in context = %q", gotEmail)
	}
	if gotName != "Pat" {
		t.Errorf("display name in context = %q, want Pat", gotName)
	}
}

func TestAuthMiddlewareRejectsRequests(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare bearer", "Bearer "},
		{"invalid token", "Bearer bad-token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{token: "good-token", claims: testClaims()}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("next handler reached without valid auth")
			})

			rec := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			AuthMiddleware(verifier)(next).ServeHTTP(rec, r)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("content type = %q, want application/problem+json", ct)
			}
		})
	}
}

func TestAuthMiddlewareCaseInsensitiveScheme(t *testing.T) {
	verifier := &fakeVerifier{token: "good-token", claims: testClaims()}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	r.Header.Set("Authorization", "bearer good-token")

	AuthMiddleware(verifier)(next).ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for lowercase scheme", rec.Code)
	}
}

func TestAuthMiddlewareBypasses(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"health check", http.MethodGet, "/health"},
		{"cors preflight", http.MethodOptions, "/api/projects"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{token: "good-token", claims: testClaims()}
			reached := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				w.WriteHeader(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.path, nil)

			AuthMiddleware(verifier)(next).ServeHTTP(rec, r)

			if !reached {
				t.Error("next handler not reached")
			}
			if verifier.calls != 0 {
				t.Errorf("verifier called %d times, want 0", verifier.calls)
			}
		})
	}
}
