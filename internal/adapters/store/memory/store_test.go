package memory_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/adapters/store/memory"
	"github.com/jsamuelsen11/todo-service/internal/adapters/store/storetest"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

func TestStore_Conformance(t *testing.T) {
	storetest.Run(t, func(_ *testing.T) ports.TodoStore {
		return memory.New()
	})
}

func TestStore_ReturnsCopies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.New()

	saved, err := s.Save(ctx, storetest.NewTodo("original", false))
	require.NoError(t, err)

	saved.Title = "mutated"

	got, err := s.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Title)
}

func TestStore_IDsAreNotReused(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.New()

	first, err := s.Save(ctx, storetest.NewTodo("a", false))
	require.NoError(t, err)
	require.NoError(t, s.DeleteByID(ctx, first.ID))

	second, err := s.Save(ctx, storetest.NewTodo("b", false))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestStore_ConcurrentSaves(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.New()

	const n = 50
	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			_, err := s.Save(ctx, storetest.NewTodo("concurrent", false))
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}
