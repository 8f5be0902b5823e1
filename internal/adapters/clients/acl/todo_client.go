package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wtek/todoterm/internal/adapters/clients/acl/todo"
	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/platform/httpclient"
	"github.com/wtek/todoterm/internal/ports"
)

// Compile-time interface check.
var _ ports.TodoClient = (*TodoClient)(nil)

// TodoClient is the outbound adapter for the /todos resource. It
// implements [ports.TodoClient].
//
// All methods translate between domain types and the API's wire
// representations via the ACL translators in sub-package [todo]. HTTP
// errors are mapped to domain errors (ErrNotFound, *ValidationError,
// etc.) by [TranslateHTTPError].
//
// The underlying [httpclient.Client] provides bearer-token injection,
// 401 session invalidation, circuit breaking, and OpenTelemetry tracing
// for every outbound call.
type TodoClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewTodoClient creates a TodoClient that sends requests through the given
// [httpclient.Client]. The client's BaseURL should point at the API root
// (e.g. "http://localhost:8080/api"). The logger is used for error-level
// diagnostics on failed or unexpected responses.
func NewTodoClient(client *httpclient.Client, logger *slog.Logger) *TodoClient {
	return &TodoClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// List fetches the authenticated user's todos from GET /todos. The API
// answers with a bare JSON array.
func (c *TodoClient) List(ctx context.Context) ([]domain.Todo, error) {
	var dtos []todo.TodoDTO
	if err := c.req.Do(ctx, http.MethodGet, "/todos", nil, &dtos); err != nil {
		return nil, err
	}
	return todo.ToDomainTodoList(dtos)
}

// Create sends a POST /todos with the translated request body and returns
// the created todo with its server-assigned ID. Returns
// *domain.ValidationError if the API rejects the payload.
func (c *TodoClient) Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error) {
	reqDTO := todo.ToCreateTodoRequest(t)

	var respDTO todo.TodoDTO
	if err := c.req.Do(ctx, http.MethodPost, "/todos", reqDTO, &respDTO); err != nil {
		return nil, err
	}
	return todo.ToDomainTodo(&respDTO)
}

// Update sends a PUT /todos/{id} carrying only the fields set in u and
// returns the server's merged entity. Returns domain.ErrNotFound if the
// todo does not exist or *domain.ValidationError if the payload is
// rejected.
func (c *TodoClient) Update(ctx context.Context, id int64, u domain.TodoUpdate) (*domain.Todo, error) {
	path := fmt.Sprintf("/todos/%d", id)
	reqDTO := todo.ToUpdateTodoRequest(u)

	var respDTO todo.TodoDTO
	if err := c.req.Do(ctx, http.MethodPut, path, reqDTO, &respDTO); err != nil {
		return nil, err
	}
	return todo.ToDomainTodo(&respDTO)
}

// Delete sends a DELETE /todos/{id}. Returns domain.ErrNotFound if the
// todo does not exist.
func (c *TodoClient) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/todos/%d", id)
	return c.req.Do(ctx, http.MethodDelete, path, nil, nil)
}
