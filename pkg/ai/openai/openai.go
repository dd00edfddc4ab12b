package openai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/types"
)

const (
	NAME = "openai"
)

var _ ai.Explorer = (*Driver)(nil)

type Driver struct {
	client *openai.Client
	model  string
}

func New(token, proxy, model string) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model == "" {
		model = openai.GPT4oMini
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Explore 只支持普通搜索，不带引用来源
func (s *Driver) Explore(ctx context.Context, req ai.ExploreRequest) (types.ExploreResult, error) {
	if req.Mode == types.EXPLORE_MODE_MAPS {
		return types.ExploreResult{}, ai.ErrUnsupportedFeature
	}

	chatReq := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: req.Query,
			},
		},
	}

	slog.Debug("Explore", slog.String("driver", NAME), slog.String("model", s.model))
	resp, err := s.client.CreateChatCompletion(ctx, chatReq)
	if err != nil || len(resp.Choices) == 0 {
		return types.ExploreResult{}, fmt.Errorf("Completion error: err:%v len(choices):%v", err, len(resp.Choices))
	}

	return types.ExploreResult{
		Text:    resp.Choices[0].Message.Content,
		Sources: []types.GroundingSource{},
	}, nil
}
