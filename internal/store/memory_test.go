package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string](0)

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, "a", "one"))
	require.NoError(t, s.Save(ctx, "a", "uno"))
	v, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "uno", v)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "missing"))
	assert.Equal(t, 0, s.Len())
}

func TestMemory_EvictsOldestWhenFull(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int](2)
	require.NoError(t, s.Save(ctx, "a", 1))
	require.NoError(t, s.Save(ctx, "b", 2))
	require.NoError(t, s.Save(ctx, "c", 3))

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, s.Len())
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int](0)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("k%d", i)
			_ = s.Save(ctx, id, i)
			_, _ = s.Get(ctx, id)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
