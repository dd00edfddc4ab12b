package gemini

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
	"google.golang.org/genai"

	"github.com/breeew/folio-api/pkg/ai"
	"github.com/breeew/folio-api/pkg/types"
)

const (
	NAME = "gemini"
)

var (
	_ ai.Explorer       = (*Driver)(nil)
	_ ai.ImageEditor    = (*Driver)(nil)
	_ ai.ImageGenerator = (*Driver)(nil)
	_ ai.VideoGenerator = (*Driver)(nil)
	_ ai.LiveConnector  = (*Driver)(nil)
)

type Driver struct {
	token      string
	client     *genai.Client
	httpClient *http.Client
}

func New(ctx context.Context, token string) (*Driver, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  token,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &Driver{
		token:      token,
		client:     client,
		httpClient: &http.Client{},
	}, nil
}

func (s *Driver) Explore(ctx context.Context, req ai.ExploreRequest) (types.ExploreResult, error) {
	model := ai.MODEL_EXPLORE_SEARCH
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	if req.Mode == types.EXPLORE_MODE_MAPS {
		model = ai.MODEL_EXPLORE_MAPS
		cfg.Tools = []*genai.Tool{{GoogleMaps: &genai.GoogleMaps{}}}
		if req.Latitude != nil && req.Longitude != nil {
			cfg.ToolConfig = &genai.ToolConfig{
				RetrievalConfig: &genai.RetrievalConfig{
					LatLng: &genai.LatLng{
						Latitude:  req.Latitude,
						Longitude: req.Longitude,
					},
				},
			}
		}
	}

	slog.Debug("Explore", slog.String("driver", NAME), slog.String("model", model), slog.String("mode", string(req.Mode)))
	resp, err := s.client.Models.GenerateContent(ctx, model, genai.Text(req.Query), cfg)
	if err != nil {
		return types.ExploreResult{}, fmt.Errorf("generate content error: %w", err)
	}

	return types.ExploreResult{
		Text:    resp.Text(),
		Sources: groundingSources(resp),
	}, nil
}

// groundingSources 提取搜索与地图的引用来源，按 uri 去重
func groundingSources(resp *genai.GenerateContentResponse) []types.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return []types.GroundingSource{}
	}

	var res []types.GroundingSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil {
			continue
		}
		switch {
		case chunk.Web != nil && chunk.Web.URI != "":
			res = append(res, types.GroundingSource{URI: chunk.Web.URI, Title: chunk.Web.Title})
		case chunk.Maps != nil && chunk.Maps.URI != "":
			res = append(res, types.GroundingSource{URI: chunk.Maps.URI, Title: chunk.Maps.Title})
		}
	}
	res = lo.UniqBy(res, func(item types.GroundingSource) string {
		return item.URI
	})
	if res == nil {
		return []types.GroundingSource{}
	}
	return res
}

func firstImage(resp *genai.GenerateContentResponse) (ai.Image, error) {
	if resp == nil {
		return ai.Image{}, ai.ErrNoImage
	}
	for _, c := range resp.Candidates {
		if c == nil || c.Content == nil {
			continue
		}
		for _, part := range c.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return ai.Image{
					MIMEType: lo.Ternary(part.InlineData.MIMEType != "", part.InlineData.MIMEType, "image/png"),
					Data:     part.InlineData.Data,
				}, nil
			}
		}
	}
	return ai.Image{}, ai.ErrNoImage
}

func (s *Driver) EditImage(ctx context.Context, img ai.Image, prompt string) (ai.Image, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(img.Data, img.MIMEType),
			genai.NewPartFromText(prompt),
		}, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(ctx, ai.MODEL_IMAGE_EDIT, contents, nil)
	if err != nil {
		return ai.Image{}, fmt.Errorf("generate content error: %w", err)
	}
	return firstImage(resp)
}

func (s *Driver) GenerateImage(ctx context.Context, prompt string, size types.ImageSize) (ai.Image, error) {
	resp, err := s.client.Models.GenerateContent(ctx, ai.MODEL_IMAGE_GENERATE, genai.Text(prompt), &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: ai.IMAGE_ASPECT_RATIO,
			ImageSize:   string(size),
		},
	})
	if err != nil {
		return ai.Image{}, fmt.Errorf("generate content error: %w", err)
	}
	return firstImage(resp)
}

func videoOperation(op *genai.GenerateVideosOperation) *ai.VideoOperation {
	res := &ai.VideoOperation{
		Name: op.Name,
		Done: op.Done,
	}
	if len(op.Error) > 0 {
		res.Error = fmt.Sprint(lo.ValueOr(op.Error, "message", any("video generation failed")))
	}
	if op.Response != nil && len(op.Response.GeneratedVideos) > 0 {
		if v := op.Response.GeneratedVideos[0]; v != nil && v.Video != nil {
			res.VideoURI = v.Video.URI
		}
	}
	return res
}

func (s *Driver) StartVideo(ctx context.Context, img ai.Image, prompt string) (*ai.VideoOperation, error) {
	op, err := s.client.Models.GenerateVideos(ctx, ai.MODEL_VIDEO, prompt, &genai.Image{
		ImageBytes: img.Data,
		MIMEType:   img.MIMEType,
	}, &genai.GenerateVideosConfig{
		NumberOfVideos: 1,
		Resolution:     ai.VIDEO_RESOLUTION,
		AspectRatio:    ai.VIDEO_ASPECT_RATIO,
	})
	if err != nil {
		return nil, fmt.Errorf("generate videos error: %w", err)
	}
	return videoOperation(op), nil
}

func (s *Driver) PollVideo(ctx context.Context, name string) (*ai.VideoOperation, error) {
	op, err := s.client.Operations.GetVideosOperation(ctx, &genai.GenerateVideosOperation{Name: name}, nil)
	if err != nil {
		return nil, fmt.Errorf("get videos operation error: %w", err)
	}
	return videoOperation(op), nil
}

func (s *Driver) DownloadVideo(ctx context.Context, uri string) (io.ReadCloser, string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, "", err
	}
	q := u.Query()
	q.Set("key", s.token)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		// 错误信息中包含完整地址，去掉凭证
		return nil, "", fmt.Errorf("download video error: %s", strings.ReplaceAll(err.Error(), s.token, "***"))
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("download video: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, lo.Ternary(resp.Header.Get("Content-Type") != "", resp.Header.Get("Content-Type"), "video/mp4"), nil
}
