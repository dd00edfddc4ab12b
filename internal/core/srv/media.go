package srv

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/breeew/folio-api/pkg/object-storage/s3"
	"github.com/breeew/folio-api/pkg/utils"
)

const (
	MEDIA_PATH_PREFIX   = "media"
	UPLOAD_KEY_EXPIRES  = 5 * time.Minute
	MAX_MEDIA_FILE_SIZE = 32 << 20
)

type Media struct {
	s3 *s3.S3
}

func NewMedia(ctx context.Context, cfg s3.Config) (*Media, error) {
	client, err := s3.NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Media{s3: client}, nil
}

// fileName 以雪花 id 重命名，保留扩展名
func fileName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return utils.GenSpecIDStr() + ext
}

func datePath() string {
	return path.Join(MEDIA_PATH_PREFIX, time.Now().Format("2006/01"))
}

func (m *Media) Upload(ctx context.Context, original, contentType string, body io.Reader) (string, error) {
	key, err := m.s3.Upload(ctx, datePath(), fileName(original), contentType, body)
	if err != nil {
		return "", fmt.Errorf("failed to upload media: %w", err)
	}
	return m.s3.PublicURL(key), nil
}

type UploadKey struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

func (m *Media) UploadKey(ctx context.Context, original, contentType string) (UploadKey, error) {
	key, u, err := m.s3.GenClientUploadKey(ctx, datePath(), fileName(original), contentType, UPLOAD_KEY_EXPIRES)
	if err != nil {
		return UploadKey{}, fmt.Errorf("failed to presign upload: %w", err)
	}
	return UploadKey{
		Key:       key,
		UploadURL: u,
		URL:       m.s3.PublicURL(key),
		ExpiresIn: int64(UPLOAD_KEY_EXPIRES.Seconds()),
	}, nil
}
