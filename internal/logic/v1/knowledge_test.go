package v1_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/breeew/folio-api/internal/logic/v1"
	"github.com/breeew/folio-api/internal/seed"
	"github.com/breeew/folio-api/pkg/types"
)

func TestKnowledgeListByCategory(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewKnowledgeLogic(visitorCtx(), c)

	all, err := logic.ListKnowledge("")
	require.NoError(t, err)
	assert.Equal(t, seed.KnowledgeItems(), all)

	all2, err := logic.ListKnowledge(types.KNOWLEDGE_CATEGORY_ALL)
	require.NoError(t, err)
	assert.Equal(t, all, all2)

	ai, err := logic.ListKnowledge("AI")
	require.NoError(t, err)
	require.NotEmpty(t, ai)
	for _, item := range ai {
		assert.Equal(t, "AI", item.Category)
	}

	none, err := logic.ListKnowledge("Unknown")
	require.NoError(t, err)
	assert.Empty(t, none)

	assert.Equal(t, []string{"全部", "IC", "AI", "Tools", "生活"}, logic.Categories())
}

func TestKnowledgeTagsUnmarshal(t *testing.T) {
	var args v1.CreateKnowledgeArgs
	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","tags":" a, b ,,c "}`), &args))
	assert.Equal(t, v1.Tags{"a", "b", "c"}, args.Tags)

	require.NoError(t, json.Unmarshal([]byte(`{"title":"t","tags":["x", " ", "y "]}`), &args))
	assert.Equal(t, v1.Tags{"x", "y"}, args.Tags)

	assert.Error(t, json.Unmarshal([]byte(`{"tags":1}`), &args))
}

func TestKnowledgeCreate(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewKnowledgeLogic(adminCtx(t, c), c)

	item, err := logic.CreateKnowledge(v1.CreateKnowledgeArgs{
		Title:   "STA 基础",
		Content: "建立时间与保持时间",
		Tags:    v1.Tags{"Timing", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, types.KNOWLEDGE_CATEGORY_DEFAULT, item.Category)
	assert.Equal(t, []string{"Timing"}, item.Tags)
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, item.Date)

	list, err := logic.ListKnowledge("")
	require.NoError(t, err)
	assert.Equal(t, *item, list[0])
	assert.Len(t, list, len(seed.KnowledgeItems())+1)

	_, err = logic.CreateKnowledge(v1.CreateKnowledgeArgs{Title: "t", Content: "c", Category: "全部"})
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	_, err = logic.CreateKnowledge(v1.CreateKnowledgeArgs{Title: "t", Content: "c", Category: "Music"})
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	_, err = logic.CreateKnowledge(v1.CreateKnowledgeArgs{Title: "t"})
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	after, err := logic.ListKnowledge("")
	require.NoError(t, err)
	assert.Equal(t, list, after)
}

func TestKnowledgeDelete(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewKnowledgeLogic(adminCtx(t, c), c)

	require.NoError(t, logic.DeleteKnowledge("ai-1"))
	list, err := logic.ListKnowledge("")
	require.NoError(t, err)

	expected := lo.Reject(seed.KnowledgeItems(), func(item types.KnowledgeItem, _ int) bool {
		return item.ID == "ai-1"
	})
	assert.Equal(t, expected, list)
}

func TestKnowledgeConcurrentLikes(t *testing.T) {
	c := setupCore(t)
	logic := v1.NewKnowledgeLogic(visitorCtx(), c)

	before, err := logic.GetKnowledge("ic-1")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := logic.LikeKnowledge("ic-1"); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	after, err := logic.GetKnowledge("ic-1")
	require.NoError(t, err)
	assert.Equal(t, before.Likes+1, after.Likes)
}
