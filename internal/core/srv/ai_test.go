package srv

import (
	"context"
	"errors"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/types"
)

type fakeExplorer struct {
	text  string
	err   error
	calls int
}

func (f *fakeExplorer) Explore(ctx context.Context, req ai.ExploreRequest) (types.ExploreResult, error) {
	f.calls++
	if f.err != nil {
		return types.ExploreResult{}, f.err
	}
	return types.ExploreResult{Text: f.text + ":" + string(req.Mode)}, nil
}

func TestAIResolveByUsage(t *testing.T) {
	a := NewAI(map[string]string{USAGE_EXPLORE: "openai"})
	a.Install("gemini", &fakeExplorer{text: "gemini"})
	a.Install("openai", &fakeExplorer{text: "openai"})

	res, err := a.Explore(context.Background(), ai.ExploreRequest{Query: "q", Mode: types.EXPLORE_MODE_SEARCH})
	require.NoError(t, err)
	assert.Equal(t, "openai:search", res.Text)

	// 地图模式固定走 gemini
	res, err = a.Explore(context.Background(), ai.ExploreRequest{Query: "q", Mode: types.EXPLORE_MODE_MAPS})
	require.NoError(t, err)
	assert.Equal(t, "gemini:maps", res.Text)
}

func TestAIDefaultDriver(t *testing.T) {
	a := NewAI(nil)
	assert.False(t, a.Enabled(USAGE_EXPLORE))

	_, err := a.Explore(context.Background(), ai.ExploreRequest{Query: "q"})
	assert.ErrorIs(t, err, ai.ErrNotConfigured)

	_, err = a.GenerateImage(context.Background(), "cat", types.IMAGE_SIZE_1K)
	assert.ErrorIs(t, err, ai.ErrNotConfigured)

	a.Install("first", &fakeExplorer{text: "first"})
	a.Install("second", &fakeExplorer{text: "second"})
	assert.True(t, a.Enabled(USAGE_EXPLORE))
	assert.False(t, a.Enabled(USAGE_VIDEO))

	res, err := a.Explore(context.Background(), ai.ExploreRequest{Query: "q", Mode: types.EXPLORE_MODE_SEARCH})
	require.NoError(t, err)
	assert.Equal(t, "first:search", res.Text)
}

func TestAIBreakerOpens(t *testing.T) {
	f := &fakeExplorer{err: errors.New("upstream down")}
	a := NewAI(nil)
	a.Install("gemini", f)

	for i := 0; i < 5; i++ {
		_, err := a.Explore(context.Background(), ai.ExploreRequest{Query: "q"})
		assert.Error(t, err)
	}
	_, err := a.Explore(context.Background(), ai.ExploreRequest{Query: "q"})
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 5, f.calls)
}

func TestAIBreakerIgnoresCanceled(t *testing.T) {
	f := &fakeExplorer{err: context.Canceled}
	a := NewAI(nil)
	a.Install("gemini", f)

	for i := 0; i < 10; i++ {
		_, err := a.Explore(context.Background(), ai.ExploreRequest{Query: "q"})
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, 10, f.calls)
}
