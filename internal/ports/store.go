package ports

import (
	"context"

	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
)

// TodoStore defines the persistence port for todos. Implemented by the store
// adapters (memory, sqlite, postgres) and by the guard decorator; called by
// the application layer. Iteration order is ascending id everywhere.
type TodoStore interface {
	// FindByID returns the todo with the given id.
	// Returns domain.ErrNotFound if it does not exist.
	FindByID(ctx context.Context, id int64) (*todo.Todo, error)

	// Save inserts t and returns it with its store-assigned ID. Any ID set
	// on t is ignored.
	Save(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// Replace deletes the todo with t.ID and re-inserts t under the same id
	// as one atomic step.
	// Returns domain.ErrNotFound if no todo with t.ID exists.
	Replace(ctx context.Context, t *todo.Todo) (*todo.Todo, error)

	// DeleteByID removes the todo with the given id.
	// Returns domain.ErrNotFound if it does not exist.
	DeleteByID(ctx context.Context, id int64) error

	// FindAll returns every stored todo.
	FindAll(ctx context.Context) ([]todo.Todo, error)

	// FindPage returns the page selected by q, with Total set to the number
	// of stored todos before filtering. Semantics match todo.Paginate.
	FindPage(ctx context.Context, q todo.Query) (*todo.Page, error)
}

// TodoDatabase is a TodoStore backed by a connection that can be probed and
// released. The guard decorator wraps one of these.
type TodoDatabase interface {
	TodoStore

	// Ping verifies the backing connection is usable.
	Ping(ctx context.Context) error

	// Close releases the backing connection.
	Close() error
}
