package acl

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/platform/config"
	"github.com/wtek/todoterm/internal/platform/httpclient"
)

// newTestClient creates an httpclient.Client pointing at the given test
// server with a circuit breaker loose enough to stay closed across a
// test's worth of failures.
func newTestClient(t *testing.T, baseURL string) *httpclient.Client {
	t.Helper()

	cfg := &config.APIConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   50,
			Timeout:       30 * time.Second,
			HalfOpenLimit: 1,
		},
	}

	return httpclient.New(cfg, "todo-api-test", nil, nil, slog.Default())
}

// writeJSON encodes v as JSON to the response writer, failing the test on error.
func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()

	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("failed to encode response: %v", err)
	}
}

// decodeBody decodes the request body into a generic map for payload checks.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("reading request body: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("unmarshaling request body %q: %v", body, err)
	}
	return m
}

func TestTodoClient_List(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, []map[string]any{
			{"id": 1, "title": "Buy milk", "description": "2%", "completed": false, "dueDate": "2026-09-01"},
			{"id": 2, "title": "Call dentist", "description": "", "completed": true},
		})
	}))
	defer ts.Close()

	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	todos, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("len(todos) = %d, want 2", len(todos))
	}
	if todos[0].Title != "Buy milk" {
		t.Errorf("Title = %q, want %q", todos[0].Title, "Buy milk")
	}
	if todos[0].DueDate == nil || todos[0].DueDate.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("DueDate = %v, want 2026-09-01", todos[0].DueDate)
	}
	if todos[1].DueDate != nil {
		t.Errorf("DueDate = %v, want nil for an undated todo", todos[1].DueDate)
	}
	if !todos[1].Completed {
		t.Error("Completed = false, want true")
	}
}

func TestTodoClient_List_MalformedDueDate(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, []map[string]any{
			{"id": 1, "title": "x", "dueDate": "01/09/2026"},
		})
	}))
	defer ts.Close()

	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	if _, err := client.List(context.Background()); err == nil {
		t.Fatal("List() error = nil for malformed due date, want non-nil")
	}
}

func TestTodoClient_Create(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/todos" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotBody = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, map[string]any{
			"id": 42, "title": "Buy milk", "description": "", "completed": false,
		})
	}))
	defer ts.Close()

	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	created, err := client.Create(context.Background(), &domain.Todo{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID != 42 {
		t.Errorf("ID = %d, want 42", created.ID)
	}

	if gotBody["title"] != "Buy milk" {
		t.Errorf("payload title = %v, want %q", gotBody["title"], "Buy milk")
	}
	if completed, ok := gotBody["completed"]; !ok || completed != false {
		t.Errorf("payload completed = %v (present=%t), want explicit false", completed, ok)
	}
	if _, ok := gotBody["dueDate"]; ok {
		t.Error("payload carries dueDate for an undated todo, want it omitted")
	}
}

func TestTodoClient_Update_PartialPayload(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/todos/7" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotBody = decodeBody(t, r)
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, map[string]any{
			"id": 7, "title": "Buy milk", "description": "", "completed": true,
		})
	}))
	defer ts.Close()

	completed := true
	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	updated, err := client.Update(context.Background(), 7, domain.TodoUpdate{Completed: &completed})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.Completed {
		t.Error("Completed = false, want true from server response")
	}

	if len(gotBody) != 1 {
		t.Errorf("payload = %v, want only the completed field", gotBody)
	}
	if gotBody["completed"] != true {
		t.Errorf("payload completed = %v, want true", gotBody["completed"])
	}
}

func TestTodoClient_Update_NotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		writeJSON(t, w, map[string]any{"status": 404, "error": "Not Found"})
	}))
	defer ts.Close()

	title := "x"
	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	_, err := client.Update(context.Background(), 999, domain.TodoUpdate{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestTodoClient_Create_ValidationError(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(t, w, map[string]any{"title": []string{"is required"}})
	}))
	defer ts.Close()

	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	_, err := client.Create(context.Background(), &domain.Todo{})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Create() error = %v, want *domain.ValidationError", err)
	}
	if got := verr.ByField("title"); got != "is required" {
		t.Errorf("ByField(title) = %q, want %q", got, "is required")
	}
}

func TestTodoClient_Delete(t *testing.T) {
	t.Parallel()

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s, want DELETE", r.Method)
		}
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	if err := client.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if gotPath != "/todos/7" {
		t.Errorf("path = %q, want %q", gotPath, "/todos/7")
	}
}

func TestTodoClient_Delete_NotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewTodoClient(newTestClient(t, ts.URL), slog.Default())
	if err := client.Delete(context.Background(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}
