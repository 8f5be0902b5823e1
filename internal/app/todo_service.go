package app

import (
	"context"
	"log/slog"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService by orchestrating calls to the
// API through the TodoClient port. It handles client-side validation and
// structured logging but keeps no cache: the caller reconciles its
// in-memory collection from the entities the server returns.
type TodoService struct {
	client ports.TodoClient
	logger *slog.Logger
}

// NewTodoService creates a TodoService.
func NewTodoService(client ports.TodoClient, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TodoService{
		client: client,
		logger: logger,
	}
}

// List returns the authenticated user's todo collection.
func (s *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	s.logger.InfoContext(ctx, "listing todos")

	todos, err := s.client.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list todos",
			slog.String("operation", "List"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return todos, nil
}

// Create validates and creates a new todo, returning the created entity
// with its server-assigned ID. An empty title never reaches the network:
// validation fails first with a *domain.ValidationError. A new todo is
// always open, whatever the caller put in Completed.
func (s *TodoService) Create(ctx context.Context, t domain.Todo) (*domain.Todo, error) {
	s.logger.InfoContext(ctx, "creating todo", slog.String("title", t.Title))

	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.Completed = false

	created, err := s.client.Create(ctx, &t)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create todo",
			slog.String("operation", "Create"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// Update validates and submits a partial update, returning the server's
// merged entity. The caller replaces its in-memory entry with the return
// value rather than merging locally.
func (s *TodoService) Update(ctx context.Context, id int64, u domain.TodoUpdate) (*domain.Todo, error) {
	s.logger.InfoContext(ctx, "updating todo", slog.Int64("id", id))

	if err := u.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.client.Update(ctx, id, u)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update todo",
			slog.String("operation", "Update"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// Delete removes a todo by ID.
func (s *TodoService) Delete(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting todo", slog.Int64("id", id))

	if err := s.client.Delete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete todo",
			slog.String("operation", "Delete"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}
