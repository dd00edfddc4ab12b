package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/internal/store/kvstore"
)

type item struct {
	ID string `json:"id"`
}

func seedItems() []item {
	return []item{{ID: "s1"}, {ID: "s2"}}
}

func TestCollectionLoadFallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	c := store.NewCollection(kv, "items", seedItems)

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, seedItems(), got)

	exists, err := c.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	// 保存空列表之后不再回退到种子数据
	require.NoError(t, c.Save(ctx, []item{}))
	got, err = c.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCollectionLoadMalformed(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, "items", []byte("{not json")))

	_, err := store.NewCollection(kv, "items", seedItems).Load(ctx)
	assert.Error(t, err)
}

func TestCollectionMutate(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	c := store.NewCollection(kv, "items", seedItems)

	_, err := c.Mutate(ctx, func(items []item) ([]item, error) {
		return nil, fmt.Errorf("abort")
	})
	assert.Error(t, err)
	exists, _ := c.Exists(ctx)
	assert.False(t, exists)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Mutate(ctx, func(items []item) ([]item, error) {
				return append([]item{{ID: fmt.Sprint(i)}}, items...), nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := c.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 52)
}
