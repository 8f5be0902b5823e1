package todo

import (
	"fmt"
	"time"

	"github.com/wtek/todoterm/internal/domain"
)

// ToDomainTodo converts a wire TodoDTO to a domain Todo entity, parsing
// the due date if present. A malformed due date is an error: silently
// dropping it would make the display sort lie about the server state.
func ToDomainTodo(dto *TodoDTO) (*domain.Todo, error) {
	var due *time.Time
	if dto.DueDate != nil && *dto.DueDate != "" {
		parsed, err := time.Parse(DateLayout, *dto.DueDate)
		if err != nil {
			return nil, fmt.Errorf("parsing due date %q for todo %d: %w", *dto.DueDate, dto.ID, err)
		}
		due = &parsed
	}

	return &domain.Todo{
		ID:          dto.ID,
		Title:       dto.Title,
		Description: dto.Description,
		Completed:   dto.Completed,
		DueDate:     due,
	}, nil
}

// ToDomainTodoList converts a slice of wire TodoDTOs to domain Todo
// entities, preserving order.
func ToDomainTodoList(dtos []TodoDTO) ([]domain.Todo, error) {
	todos := make([]domain.Todo, len(dtos))
	for i := range dtos {
		t, err := ToDomainTodo(&dtos[i])
		if err != nil {
			return nil, err
		}
		todos[i] = *t
	}
	return todos, nil
}

// ToCreateTodoRequest converts a domain Todo to the POST /todos body.
func ToCreateTodoRequest(t *domain.Todo) CreateTodoRequestDTO {
	return CreateTodoRequestDTO{
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		DueDate:     formatDate(t.DueDate),
	}
}

// ToUpdateTodoRequest converts a domain TodoUpdate to the PUT /todos/{id}
// body. Unset fields stay nil so they are omitted from the payload and
// left untouched by the API.
func ToUpdateTodoRequest(u domain.TodoUpdate) UpdateTodoRequestDTO {
	return UpdateTodoRequestDTO{
		Title:       u.Title,
		Description: u.Description,
		Completed:   u.Completed,
		DueDate:     formatDate(u.DueDate),
	}
}

// formatDate renders an optional due date in the wire layout.
func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
