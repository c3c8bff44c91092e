package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/mocks"
)

var errStoreDown = errors.New("database is locked")

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func validTodo() todo.Todo {
	return todo.Todo{
		ID:          1,
		Title:       "test",
		Description: "test object",
		DueDate:     time.Unix(0, 0).UTC(),
		Done:        false,
	}
}

func requireViolation(t *testing.T, err error, code string) {
	t.Helper()

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.NotEmpty(t, verr.Violations)
	assert.Equal(t, code, verr.Violations[0].Code)
}

// --- NewTodoService ---

func TestNewTodoService_NilLogger(t *testing.T) {
	t.Parallel()

	svc := NewTodoService(mocks.NewMockTodoStore(t), nil)
	if svc.logger == nil {
		t.Fatal("NewTodoService(nil logger) should create a no-op logger, got nil")
	}
}

// --- GetTodo ---

func TestTodoService_GetTodo(t *testing.T) {
	t.Parallel()

	t.Run("returns todo on success", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		want := validTodo()
		store.EXPECT().FindByID(mock.Anything, int64(1)).Return(&want, nil)

		got, err := svc.GetTodo(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, want, *got)
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		store.EXPECT().FindByID(mock.Anything, int64(100)).Return(nil, domain.ErrNotFound)

		_, err := svc.GetTodo(context.Background(), 100)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// --- CreateTodo ---

func TestTodoService_CreateTodo(t *testing.T) {
	t.Parallel()

	t.Run("saves a valid todo", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		in := validTodo()
		in.ID = 0
		saved := validTodo()
		saved.ID = 42
		store.EXPECT().Save(mock.Anything, &in).Return(&saved, nil)

		got, err := svc.CreateTodo(context.Background(), &in)
		require.NoError(t, err)
		assert.Equal(t, int64(42), got.ID)
	})

	t.Run("rejects empty title without touching the store", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		in := validTodo()
		in.Title = ""

		_, err := svc.CreateTodo(context.Background(), &in)
		assert.ErrorIs(t, err, domain.ErrValidation)
		requireViolation(t, err, todo.CodeTitleNull)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("wraps store failure", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		in := validTodo()
		store.EXPECT().Save(mock.Anything, mock.Anything).Return(nil, errStoreDown)

		_, err := svc.CreateTodo(context.Background(), &in)
		assert.ErrorIs(t, err, errStoreDown)
		assert.NotErrorIs(t, err, domain.ErrValidation)
	})
}

// --- UpdateTodo ---

func TestTodoService_UpdateTodo(t *testing.T) {
	t.Parallel()

	t.Run("replaces an existing todo", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		existing := validTodo()
		in := validTodo()
		in.Title = "new title"
		in.Done = true

		store.EXPECT().FindByID(mock.Anything, int64(1)).Return(&existing, nil)
		store.EXPECT().Replace(mock.Anything, &in).Return(&in, nil)

		got, err := svc.UpdateTodo(context.Background(), &in)
		require.NoError(t, err)
		assert.Equal(t, "new title", got.Title)
		assert.True(t, got.Done)
	})

	t.Run("unknown id is not found even with an invalid body", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		in := validTodo()
		in.ID = 3
		in.Title = ""
		store.EXPECT().FindByID(mock.Anything, int64(3)).Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateTodo(context.Background(), &in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NotErrorIs(t, err, domain.ErrValidation)
		store.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("invalid body for existing id is rejected before replace", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		existing := validTodo()
		in := validTodo()
		in.Title = ""
		store.EXPECT().FindByID(mock.Anything, int64(1)).Return(&existing, nil)

		_, err := svc.UpdateTodo(context.Background(), &in)
		requireViolation(t, err, todo.CodeTitleNull)
		store.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("not found from replace is preserved", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		in := validTodo()
		store.EXPECT().FindByID(mock.Anything, int64(1)).Return(&in, nil)
		store.EXPECT().Replace(mock.Anything, &in).Return(nil, domain.ErrNotFound)

		_, err := svc.UpdateTodo(context.Background(), &in)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// --- DeleteTodo ---

func TestTodoService_DeleteTodo(t *testing.T) {
	t.Parallel()

	t.Run("deletes", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		store.EXPECT().DeleteByID(mock.Anything, int64(1)).Return(nil)

		require.NoError(t, svc.DeleteTodo(context.Background(), 1))
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		store.EXPECT().DeleteByID(mock.Anything, int64(100)).Return(domain.ErrNotFound)

		assert.ErrorIs(t, svc.DeleteTodo(context.Background(), 100), domain.ErrNotFound)
	})
}

// --- ListTodos ---

func TestTodoService_ListTodos(t *testing.T) {
	t.Parallel()

	t.Run("returns the store page", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		q := todo.Query{State: todo.StateAll, Limit: 10, Offset: 0}
		want := &todo.Page{Items: []todo.Todo{validTodo()}, Total: 1}
		store.EXPECT().FindPage(mock.Anything, q).Return(want, nil)

		got, err := svc.ListTodos(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("wraps store failure", func(t *testing.T) {
		t.Parallel()
		store := mocks.NewMockTodoStore(t)
		svc := NewTodoService(store, discardLogger())

		store.EXPECT().FindPage(mock.Anything, mock.Anything).Return(nil, errStoreDown)

		_, err := svc.ListTodos(context.Background(), todo.Query{State: todo.StateUnfinished, Limit: 5})
		assert.ErrorIs(t, err, errStoreDown)
	})
}
