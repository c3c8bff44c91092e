// Package dto provides HTTP request and response data transfer objects and
// the error-to-response mapping for the inbound HTTP adapter layer.
package dto

import "github.com/jsamuelsen11/todo-service/internal/domain/todo"

// Messages returned in MessageResponse bodies.
const MsgTodoDeleted = "todo deleted"

// TodoResponse represents a single todo in HTTP responses.
type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Done        bool   `json:"done"`
}

// Probe statuses reported by the health endpoints.
const (
	HealthOK       = "ok"
	HealthReady    = "ready"
	HealthNotReady = "not_ready"
)

// HealthResponse is the body of /health/live and /health/ready. Checks maps
// each registered checker to "ok" or its failure message.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// MessageResponse carries a short confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToTodoResponse converts a domain Todo entity to an HTTP response DTO.
func ToTodoResponse(t *todo.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     todo.FormatDueDate(t.DueDate),
		Done:        t.Done,
	}
}

// ToTodoListResponse converts a page of todos. The result is never nil so
// an empty page encodes as [].
func ToTodoListResponse(todos []todo.Todo) []TodoResponse {
	items := make([]TodoResponse, len(todos))
	for i := range todos {
		items[i] = ToTodoResponse(&todos[i])
	}
	return items
}
