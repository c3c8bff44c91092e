// Package memory provides an in-process ports.TodoStore backed by a slice
// kept in ascending id order. It is used by the test profile and by unit
// tests that need a real store.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time check that Store implements ports.TodoStore.
var _ ports.TodoStore = (*Store)(nil)

// Store is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	todos  []todo.Todo
	nextID int64
}

// New returns an empty Store. Ids start at 1.
func New() *Store {
	return &Store{nextID: 1}
}

// FindByID returns a copy of the todo with the given id.
func (s *Store) FindByID(_ context.Context, id int64) (*todo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index(id)
	if !ok {
		return nil, domain.ErrNotFound
	}
	t := s.todos[i]
	return &t, nil
}

// Save appends t under the next id.
func (s *Store) Save(_ context.Context, t *todo.Todo) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := *t
	saved.ID = s.nextID
	s.nextID++
	s.todos = append(s.todos, saved)

	return &saved, nil
}

// Replace overwrites the todo in place, which keeps its position.
func (s *Store) Replace(_ context.Context, t *todo.Todo) (*todo.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index(t.ID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.todos[i] = *t

	replaced := *t
	return &replaced, nil
}

// DeleteByID removes the todo with the given id.
func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index(id)
	if !ok {
		return domain.ErrNotFound
	}
	s.todos = slices.Delete(s.todos, i, i+1)

	return nil
}

// FindAll returns a copy of every stored todo.
func (s *Store) FindAll(_ context.Context) ([]todo.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]todo.Todo, len(s.todos))
	copy(out, s.todos)
	return out, nil
}

// FindPage applies todo.Paginate to the stored todos.
func (s *Store) FindPage(_ context.Context, q todo.Query) (*todo.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return todo.Paginate(s.todos, q), nil
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// index binary-searches the id-ordered slice. Caller holds mu.
func (s *Store) index(id int64) (int, bool) {
	return slices.BinarySearchFunc(s.todos, id, func(t todo.Todo, id int64) int {
		return cmp.Compare(t.ID, id)
	})
}
