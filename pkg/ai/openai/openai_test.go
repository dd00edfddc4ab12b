package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/types"
)

func TestExplore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "南京有什么好吃的", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: "鸭血粉丝汤"},
			}},
		})
	}))
	defer srv.Close()

	d := New("test", srv.URL+"/v1", "")
	res, err := d.Explore(context.Background(), ai.ExploreRequest{Query: "南京有什么好吃的", Mode: types.EXPLORE_MODE_SEARCH})
	require.NoError(t, err)
	assert.Equal(t, "鸭血粉丝汤", res.Text)
	assert.Empty(t, res.Sources)

	_, err = d.Explore(context.Background(), ai.ExploreRequest{Query: "附近", Mode: types.EXPLORE_MODE_MAPS})
	assert.ErrorIs(t, err, ai.ErrUnsupportedFeature)
}
