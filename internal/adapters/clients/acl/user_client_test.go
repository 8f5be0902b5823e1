package acl

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wtek/todoterm/internal/domain"
)

func TestUserClient_Me(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/users/me" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, map[string]any{
			"username": "ada@example.com", "email": "ada@example.com",
			"firstName": "Ada", "lastName": "Lovelace",
		})
	}))
	defer ts.Close()

	client := NewUserClient(newTestClient(t, ts.URL), slog.Default())
	profile, err := client.Me(context.Background())
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if profile.FirstName != "Ada" || profile.LastName != "Lovelace" || profile.Email != "ada@example.com" {
		t.Errorf("profile = %+v, want the camelCase fields mapped", profile)
	}
}

func TestUserClient_Me_Unauthorized(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewUserClient(newTestClient(t, ts.URL), slog.Default())
	if _, err := client.Me(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("Me() error = %v, want ErrUnauthorized", err)
	}
}

func TestUserClient_UpdateMe_PartialPayload(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/users/me" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotBody = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, map[string]any{
			"email": "ada@example.com", "firstName": "Augusta", "lastName": "Lovelace",
		})
	}))
	defer ts.Close()

	first := "Augusta"
	client := NewUserClient(newTestClient(t, ts.URL), slog.Default())
	profile, err := client.UpdateMe(context.Background(), domain.ProfileUpdate{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateMe() error = %v", err)
	}
	if profile.FirstName != "Augusta" {
		t.Errorf("FirstName = %q, want %q from server response", profile.FirstName, "Augusta")
	}

	// Only the changed field, camelCase on the wire.
	if len(gotBody) != 1 || gotBody["firstName"] != "Augusta" {
		t.Errorf("payload = %v, want only firstName", gotBody)
	}
}
