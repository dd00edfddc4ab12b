package ai

import (
	"context"
	"errors"
	"io"

	"github.com/breeew/folio-api/pkg/types"
)

const (
	MODEL_EXPLORE_SEARCH = "gemini-3-flash-preview"
	MODEL_EXPLORE_MAPS   = "gemini-2.5-flash"
	MODEL_IMAGE_EDIT     = "gemini-2.5-flash-image"
	MODEL_IMAGE_GENERATE = "gemini-3-pro-image-preview"
	MODEL_VIDEO          = "veo-3.1-fast-generate-preview"
	MODEL_LIVE           = "gemini-2.5-flash-native-audio-preview-09-2025"

	LIVE_VOICE_NAME         = "Zephyr"
	LIVE_SYSTEM_INSTRUCTION = "你是一个友好、知识渊博的博客助手。请用中文回答，保持简洁、有吸引力。"
	// 客户端上行 16kHz，模型下行 24kHz，均为单声道 PCM16
	LIVE_INPUT_MIME_TYPE = "audio/pcm;rate=16000"

	DEFAULT_VIDEO_PROMPT = "Animate this image naturally"
	IMAGE_ASPECT_RATIO   = "1:1"
	VIDEO_ASPECT_RATIO   = "16:9"
	VIDEO_RESOLUTION     = "720p"

	MAX_IMAGE_SIZE = 10 << 20
)

var (
	ErrNoImage            = errors.New("model response contains no image")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrNotConfigured      = errors.New("ai driver not configured")
)

type ExploreRequest struct {
	Query     string
	Mode      types.ExploreMode
	Latitude  *float64
	Longitude *float64
}

type Explorer interface {
	Explore(ctx context.Context, req ExploreRequest) (types.ExploreResult, error)
}

type Image struct {
	MIMEType string
	Data     []byte
}

type ImageEditor interface {
	EditImage(ctx context.Context, img Image, prompt string) (Image, error)
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, size types.ImageSize) (Image, error)
}

// VideoOperation 视频生成的长任务，Name 可用于重新查询
type VideoOperation struct {
	Name     string
	Done     bool
	VideoURI string
	Error    string
}

type VideoGenerator interface {
	StartVideo(ctx context.Context, img Image, prompt string) (*VideoOperation, error)
	PollVideo(ctx context.Context, name string) (*VideoOperation, error)
	// DownloadVideo 由服务端携带凭证下载，凭证不会暴露给调用方
	DownloadVideo(ctx context.Context, uri string) (io.ReadCloser, string, error)
}

// LiveMessage 模型下行的一条消息，Audio 为 24kHz PCM16
type LiveMessage struct {
	Audio        [][]byte
	Interrupted  bool
	TurnComplete bool
}

type LiveSession interface {
	SendAudio(pcm []byte) error
	Receive() (LiveMessage, error)
	Close() error
}

type LiveConnector interface {
	ConnectLive(ctx context.Context) (LiveSession, error)
}
