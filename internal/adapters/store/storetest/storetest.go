// Package storetest is a conformance suite shared by every ports.TodoStore
// implementation. Each adapter's tests call Run with a factory that returns
// a fresh, empty store.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/domain"
	"github.com/jsamuelsen11/todo-service/internal/domain/todo"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// Factory returns an empty store. Cleanup is registered on t.
type Factory func(t *testing.T) ports.TodoStore

// Run executes the full suite against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("SaveAssignsIncreasingIDs", func(t *testing.T) { testSaveAssignsIDs(t, newStore(t)) })
	t.Run("SaveIgnoresCallerID", func(t *testing.T) { testSaveIgnoresCallerID(t, newStore(t)) })
	t.Run("FindByIDRoundTrip", func(t *testing.T) { testFindByIDRoundTrip(t, newStore(t)) })
	t.Run("FractionalDueDateRoundTrip", func(t *testing.T) { testFractionalDueDateRoundTrip(t, newStore(t)) })
	t.Run("FindByIDMissing", func(t *testing.T) { testFindByIDMissing(t, newStore(t)) })
	t.Run("ReplaceKeepsIDAndOrder", func(t *testing.T) { testReplaceKeepsIDAndOrder(t, newStore(t)) })
	t.Run("ReplaceMissing", func(t *testing.T) { testReplaceMissing(t, newStore(t)) })
	t.Run("DeleteByID", func(t *testing.T) { testDeleteByID(t, newStore(t)) })
	t.Run("DeleteByIDMissing", func(t *testing.T) { testDeleteByIDMissing(t, newStore(t)) })
	t.Run("FindAllOrder", func(t *testing.T) { testFindAllOrder(t, newStore(t)) })
	t.Run("FindPageEmptyStore", func(t *testing.T) { testFindPageEmptyStore(t, newStore(t)) })
	t.Run("FindPageMatchesPaginate", func(t *testing.T) { testFindPageMatchesPaginate(t, newStore(t)) })
	t.Run("FindPageAllDone", func(t *testing.T) { testFindPageAllDone(t, newStore(t)) })
}

// Epoch is the due date used by the fixture todo.
var Epoch = time.Unix(0, 0).UTC()

// NewTodo returns a valid todo with the given title.
func NewTodo(title string, done bool) *todo.Todo {
	return &todo.Todo{
		Title:       title,
		Description: title + " description",
		DueDate:     time.Date(2030, time.January, 2, 15, 4, 5, 0, time.UTC),
		Done:        done,
	}
}

func seed(t *testing.T, s ports.TodoStore, todos ...*todo.Todo) []todo.Todo {
	t.Helper()

	out := make([]todo.Todo, 0, len(todos))
	for _, td := range todos {
		saved, err := s.Save(context.Background(), td)
		require.NoError(t, err)
		out = append(out, *saved)
	}
	return out
}

func assertSameTodo(t *testing.T, want, got todo.Todo) {
	t.Helper()

	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Title, got.Title)
	assert.Equal(t, want.Description, got.Description)
	assert.True(t, want.DueDate.Equal(got.DueDate), "due date: want %v, got %v", want.DueDate, got.DueDate)
	assert.Equal(t, want.Done, got.Done)
}

func ids(todos []todo.Todo) []int64 {
	out := make([]int64, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func testSaveAssignsIDs(t *testing.T, s ports.TodoStore) {
	saved := seed(t, s, NewTodo("first", false), NewTodo("second", false))

	assert.Positive(t, saved[0].ID)
	assert.Greater(t, saved[1].ID, saved[0].ID)
}

func testSaveIgnoresCallerID(t *testing.T, s ports.TodoStore) {
	in := NewTodo("caller id", false)
	in.ID = 999

	saved := seed(t, s, in)

	assert.NotEqual(t, int64(999), saved[0].ID)
}

func testFindByIDRoundTrip(t *testing.T, s ports.TodoStore) {
	in := &todo.Todo{Title: "test", Description: "test object", DueDate: Epoch, Done: false}
	saved := seed(t, s, in)[0]

	got, err := s.FindByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assertSameTodo(t, saved, *got)
	assert.True(t, got.DueDate.Equal(Epoch))
}

func testFractionalDueDateRoundTrip(t *testing.T, s ports.TodoStore) {
	ctx := context.Background()

	due, ok := todo.ParseDueDate("2024-01-01T00:00:00.123456789Z")
	require.True(t, ok)

	in := NewTodo("fractional", false)
	in.DueDate = due
	saved := seed(t, s, in)[0]
	assert.Equal(t, "2024-01-01T00:00:00.123456Z", todo.FormatDueDate(saved.DueDate))

	got, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assertSameTodo(t, saved, *got)

	in.ID = saved.ID
	in.DueDate = due.Add(time.Microsecond)
	replaced, err := s.Replace(ctx, in)
	require.NoError(t, err)

	got, err = s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assertSameTodo(t, *replaced, *got)
	assert.Equal(t, "2024-01-01T00:00:00.123457Z", todo.FormatDueDate(got.DueDate))
}

func testFindByIDMissing(t *testing.T, s ports.TodoStore) {
	_, err := s.FindByID(context.Background(), 100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func testReplaceKeepsIDAndOrder(t *testing.T, s ports.TodoStore) {
	ctx := context.Background()
	saved := seed(t, s, NewTodo("a", false), NewTodo("b", false), NewTodo("c", false))

	repl := saved[1]
	repl.Title = "b2"
	repl.Done = true
	got, err := s.Replace(ctx, &repl)
	require.NoError(t, err)
	assertSameTodo(t, repl, *got)

	found, err := s.FindByID(ctx, repl.ID)
	require.NoError(t, err)
	assertSameTodo(t, repl, *found)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(saved), ids(all))
}

func testReplaceMissing(t *testing.T, s ports.TodoStore) {
	seed(t, s, NewTodo("a", false))

	ghost := NewTodo("ghost", false)
	ghost.ID = 100
	_, err := s.Replace(context.Background(), ghost)
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := s.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testDeleteByID(t *testing.T, s ports.TodoStore) {
	ctx := context.Background()
	saved := seed(t, s, NewTodo("a", false), NewTodo("b", false))

	require.NoError(t, s.DeleteByID(ctx, saved[0].ID))

	_, err := s.FindByID(ctx, saved[0].ID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{saved[1].ID}, ids(all))
}

func testDeleteByIDMissing(t *testing.T, s ports.TodoStore) {
	assert.ErrorIs(t, s.DeleteByID(context.Background(), 100), domain.ErrNotFound)
}

func testFindAllOrder(t *testing.T, s ports.TodoStore) {
	all, err := s.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	saved := seed(t, s, NewTodo("a", true), NewTodo("b", false), NewTodo("c", true))

	all, err = s.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := range saved {
		assertSameTodo(t, saved[i], all[i])
	}
}

func testFindPageEmptyStore(t *testing.T, s ports.TodoStore) {
	page, err := s.FindPage(context.Background(), todo.Query{State: todo.StateAll, Limit: 10})
	require.NoError(t, err)

	assert.True(t, page.StoreEmpty())
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func testFindPageMatchesPaginate(t *testing.T, s ports.TodoStore) {
	ctx := context.Background()

	var in []*todo.Todo
	for i := range 12 {
		in = append(in, NewTodo(fmt.Sprintf("todo %02d", i), i%3 == 0))
	}
	seed(t, s, in...)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)

	queries := []todo.Query{
		{State: todo.StateAll, Limit: 10, Offset: 0},
		{State: todo.StateAll, Limit: 5, Offset: 1},
		{State: todo.StateAll, Limit: 5, Offset: 2},
		{State: todo.StateAll, Limit: 5, Offset: 3},
		{State: todo.StateAll, Limit: 0, Offset: 0},
		{State: todo.StateUnfinished, Limit: 5, Offset: 0},
		{State: todo.StateUnfinished, Limit: 3, Offset: 2},
		{State: todo.StateUnfinished, Limit: 10, Offset: 100},
	}

	for _, q := range queries {
		want := todo.Paginate(all, q)

		got, err := s.FindPage(ctx, q)
		require.NoError(t, err, "query %+v", q)

		assert.Equal(t, want.Total, got.Total, "total for %+v", q)
		assert.Equal(t, ids(want.Items), ids(got.Items), "items for %+v", q)
	}
}

func testFindPageAllDone(t *testing.T, s ports.TodoStore) {
	seed(t, s, NewTodo("a", true), NewTodo("b", true))

	page, err := s.FindPage(context.Background(), todo.Query{State: todo.StateUnfinished, Limit: 5})
	require.NoError(t, err)

	assert.False(t, page.StoreEmpty())
	assert.Equal(t, 2, page.Total)
	assert.Empty(t, page.Items)
}
