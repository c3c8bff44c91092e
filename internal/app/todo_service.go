// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Compile-time check that TodoService implements ports.TodoService.
var _ ports.TodoService = (*TodoService)(nil)

// TodoService implements ports.TodoService on top of a ports.TodoStore. It
// runs validation before every write and logs failures; the rules themselves
// live in the domain package.
type TodoService struct {
	store  ports.TodoStore
	logger *slog.Logger
}

// NewTodoService creates a TodoService. A nil logger discards output.
func NewTodoService(store ports.TodoStore, logger *slog.Logger) *TodoService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &TodoService{
		store:  store,
		logger: logger,
	}
}

// GetTodo returns a single todo by ID.
func (s *TodoService) GetTodo(ctx context.Context, id int64) (*todo.Todo, error) {
	s.logger.DebugContext(ctx, "fetching todo", slog.Int64("id", id))

	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logFailure(ctx, "GetTodo", id, err)
		return nil, err
	}

	return t, nil
}

// CreateTodo validates and stores a new todo.
func (s *TodoService) CreateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "creating todo", slog.String("title", t.Title))

	if err := t.Validate(); err != nil {
		return nil, err
	}

	created, err := s.store.Save(ctx, t)
	if err != nil {
		s.logFailure(ctx, "CreateTodo", 0, err)
		return nil, fmt.Errorf("saving todo: %w", err)
	}

	return created, nil
}

// UpdateTodo checks that the todo exists, validates the replacement and
// swaps it in through a single store call.
func (s *TodoService) UpdateTodo(ctx context.Context, t *todo.Todo) (*todo.Todo, error) {
	s.logger.InfoContext(ctx, "updating todo", slog.Int64("id", t.ID))

	if _, err := s.store.FindByID(ctx, t.ID); err != nil {
		s.logFailure(ctx, "UpdateTodo", t.ID, err)
		return nil, err
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.store.Replace(ctx, t)
	if err != nil {
		s.logFailure(ctx, "UpdateTodo", t.ID, err)
		return nil, fmt.Errorf("replacing todo: %w", err)
	}

	return updated, nil
}

// DeleteTodo deletes a todo by ID.
func (s *TodoService) DeleteTodo(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting todo", slog.Int64("id", id))

	if err := s.store.DeleteByID(ctx, id); err != nil {
		s.logFailure(ctx, "DeleteTodo", id, err)
		return err
	}

	return nil
}

// ListTodos returns the page selected by q.
func (s *TodoService) ListTodos(ctx context.Context, q todo.Query) (*todo.Page, error) {
	s.logger.DebugContext(ctx, "listing todos",
		slog.String("state", q.State.String()),
		slog.Int("limit", q.Limit),
		slog.Int("offset", q.Offset),
	)

	page, err := s.store.FindPage(ctx, q)
	if err != nil {
		s.logFailure(ctx, "ListTodos", 0, err)
		return nil, fmt.Errorf("listing todos: %w", err)
	}

	return page, nil
}

// logFailure records a store failure. Missing todos are an expected client
// outcome and are logged at warn; everything else is an error.
func (s *TodoService) logFailure(ctx context.Context, operation string, id int64, err error) {
	attrs := []any{logging.Operation(operation)}
	if id != 0 {
		attrs = append(attrs, logging.TodoID(id))
	}
	attrs = append(attrs, logging.Err(err))

	if errors.Is(err, domain.ErrNotFound) {
		s.logger.WarnContext(ctx, "todo not found", attrs...)
		return
	}
	s.logger.ErrorContext(ctx, "todo store operation failed", attrs...)
}
