package seed

import (
	"context"
	"fmt"

	"github.com/breeew/folio-api/internal/store"
	"github.com/breeew/folio-api/pkg/types"
)

func seedCollection[T any](ctx context.Context, kv store.KVStore, key string, data func() T) (bool, error) {
	coll := store.NewCollection(kv, key, data)
	exist, err := coll.Exists(ctx)
	if err != nil || exist {
		return false, err
	}
	if err = coll.Save(ctx, data()); err != nil {
		return false, fmt.Errorf("failed to seed %s: %w", key, err)
	}
	return true, nil
}

// Apply 把示例数据写入尚未存在的集合，已有数据不会被覆盖，返回本次写入的 key
func Apply(ctx context.Context, kv store.KVStore) ([]string, error) {
	var (
		written []string
		steps   = []struct {
			key string
			run func(key string) (bool, error)
		}{
			{types.SECTION_CAMPUS.StorageKey(), func(key string) (bool, error) { return seedCollection(ctx, kv, key, CampusAlbums) }},
			{types.SECTION_WORLD.StorageKey(), func(key string) (bool, error) { return seedCollection(ctx, kv, key, WorldAlbums) }},
			{types.KEY_KNOWLEDGE_ITEMS, func(key string) (bool, error) { return seedCollection(ctx, kv, key, KnowledgeItems) }},
			{types.KEY_GUESTBOOK_ENTRIES, func(key string) (bool, error) { return seedCollection(ctx, kv, key, GuestbookEntries) }},
			{types.KEY_PROFILE_DATA, func(key string) (bool, error) { return seedCollection(ctx, kv, key, Profile) }},
		}
	)

	for _, step := range steps {
		ok, err := step.run(step.key)
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, step.key)
		}
	}
	return written, nil
}
