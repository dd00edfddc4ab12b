package s3

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	cfg := Config{
		Endpoint:  os.Getenv("TEST_FOLIO_S3_ENDPOINT"),
		Region:    os.Getenv("TEST_FOLIO_S3_REGION"),
		Bucket:    os.Getenv("TEST_FOLIO_S3_BUCKET"),
		AccessKey: os.Getenv("TEST_FOLIO_S3_ACCESS_KEY"),
		SecretKey: os.Getenv("TEST_FOLIO_S3_SECRET_KEY"),
	}
	if !cfg.Enabled() {
		t.Skip("TEST_FOLIO_S3_* not set")
	}
	return cfg
}

func TestPublicURL(t *testing.T) {
	s := &S3{cfg: Config{Bucket: "folio", Region: "ap-east-1"}}
	assert.Equal(t, "https://folio.s3.ap-east-1.amazonaws.com/media/a.png", s.PublicURL("media/a.png"))

	s.cfg.Endpoint = "http://127.0.0.1:9000/"
	assert.Equal(t, "http://127.0.0.1:9000/folio/media/a.png", s.PublicURL("media/a.png"))

	s.cfg.PublicHost = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/media/a.png", s.PublicURL("media/a.png"))

	assert.Equal(t, "media/a.png", objectKey("/media", "a.png"))
}

func Test_UploadKey(t *testing.T) {
	cfg := testConfig(t)
	s, err := NewS3Client(context.Background(), cfg)
	require.NoError(t, err)

	key, url, err := s.GenClientUploadKey(context.Background(), "test", "aaa.png", "image/png", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "test/aaa.png", key)
	assert.NotEmpty(t, url)
}

func Test_Upload(t *testing.T) {
	cfg := testConfig(t)
	s, err := NewS3Client(context.Background(), cfg)
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), "test", "hello.txt", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(context.Background(), key))
}
