package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var problem map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("decode problem body: %v", err)
	}
	return problem
}

func TestRespondJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondJSON(rec, http.StatusCreated, map[string]string{"id": "project-1"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["id"] != "project-1" {
		t.Errorf("body id = %q, want project-1", body["id"])
	}
}

func TestRespondErrorProblemShape(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantType string
	}{
		{"bad request", http.StatusBadRequest, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.1"},
		{"unauthorized", http.StatusUnauthorized, "https://datatracker.ietf.org/doc/html/rfc7235#section-3.1"},
		{"not found", http.StatusNotFound, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.4"},
		{"bad gateway", http.StatusBadGateway, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.3"},
		{"service unavailable", http.StatusServiceUnavailable, "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.4"},
		{"teapot falls back", http.StatusTeapot, "about:blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			RespondError(rec, tt.status, "something happened")

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("content type = %q, want application/problem+json", ct)
			}
			problem := decodeProblem(t, rec)
			if problem["type"] != tt.wantType {
				t.Errorf("type = %q, want %q", problem["type"], tt.wantType)
			}
			if problem["title"] != http.StatusText(tt.status) {
				t.Errorf("title = %q, want %q", problem["title"], http.StatusText(tt.status))
			}
			if problem["status"] != float64(tt.status) {
				t.Errorf("status field = %v, want %d", problem["status"], tt.status)
			}
			if problem["detail"] != "something happened" {
				t.Errorf("detail = %q, want the given detail", problem["detail"])
			}
		})
	}
}

func TestRespondErrorWithExtrasMergesTopLevel(t *testing.T) {
	rec := httptest.NewRecorder()

	RespondErrorWithExtras(rec, http.StatusConflict, "already exists", map[string]interface{}{
		"existing_id": "project-7",
	})

	problem := decodeProblem(t, rec)
	if problem["existing_id"] != "project-7" {
		t.Errorf("extra field = %v, want project-7 at top level", problem["existing_id"])
	}
	if problem["status"] != float64(http.StatusConflict) {
		t.Errorf("status field = %v, want 409", problem["status"])
	}
}

func TestUserContextRoundTrip(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)

	r = WithUser(r, "user-1", "pat@example.com", "Pat")

	if got := GetUserID(r); got != "user-1" {
		t.Errorf("GetUserID = %q, want user-1", got)
	}
	if got := GetUserEmail(r); got != "pat@example.com" {
		t.Errorf("GetUserEmail = %q", got)
	}
	if got := GetUserDisplayName(r); got != "Pat" {
		t.Errorf("GetUserDisplayName = %q", got)
	}

	bare := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(bare); got != "" {
		t.Errorf("GetUserID on bare request = %q, want empty", got)
	}
}
