package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoService defines the service port for todo use cases.
// Implemented by the application layer; called by inbound adapters (handlers).
type TodoService interface {
	// GetTodo returns a single todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	GetTodo(ctx context.Context, id int64) (*todo.Todo, error)

	// CreateTodo validates and stores a new todo, returning it with its
	// store-assigned ID.
	// Returns domain.ErrValidation if the todo fails validation.
	CreateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// UpdateTodo fully replaces the todo identified by t.ID. Partial updates
	// are not supported: every field of t is written.
	// Returns domain.ErrNotFound if the todo does not exist (checked before
	// validation) and domain.ErrValidation if t fails validation.
	UpdateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// DeleteTodo deletes a todo by ID.
	// Returns domain.ErrNotFound if the todo does not exist.
	DeleteTodo(ctx context.Context, id int64) error

	// ListTodos returns the page selected by q. A page whose StoreEmpty
	// reports true means nothing is stored at all.
	ListTodos(ctx context.Context, q todo.Query) (*todo.Page, error)
}
