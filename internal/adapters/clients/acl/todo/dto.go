// Package todo implements the Anti-Corruption Layer translators for the
// API's /todos resource.
package todo

// DateLayout is the wire format for due dates. The API serializes a due
// date as a bare calendar date with no time or zone component.
const DateLayout = "2006-01-02"

// TodoDTO matches the wire Todo schema. GET /todos answers a bare JSON
// array of these; POST and PUT answer a single one.
type TodoDTO struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// CreateTodoRequestDTO is the POST /todos request body. Completed is
// always sent so a new todo is explicitly open rather than relying on
// server-side defaulting.
type CreateTodoRequestDTO struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	DueDate     *string `json:"dueDate,omitempty"`
}

// UpdateTodoRequestDTO is the PUT /todos/{id} request body. All fields
// are optional; nil means "do not change this field".
type UpdateTodoRequestDTO struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}
