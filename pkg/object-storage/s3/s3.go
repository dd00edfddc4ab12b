package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Config struct {
	Endpoint   string `toml:"endpoint"`
	Region     string `toml:"region"`
	Bucket     string `toml:"bucket"`
	AccessKey  string `toml:"access_key"`
	SecretKey  string `toml:"secret_key"`
	PublicHost string `toml:"public_host"`
	// 自建 minio 等服务需要使用 path style
	PathStyle bool `toml:"path_style"`
}

func (c Config) Enabled() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

type S3 struct {
	cfg    Config
	client *s3.Client
}

func NewS3Client(ctx context.Context, cfg Config) (*S3, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: cfg.AccessKey, SecretAccessKey: cfg.SecretKey,
			},
		}),
		config.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           cfg.Endpoint,
				SigningRegion: cfg.Region,
			}, nil
		})))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &S3{
		cfg: cfg,
		client: s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.UsePathStyle = cfg.PathStyle
		}),
	}, nil
}

func objectKey(filePath, file string) string {
	return strings.TrimPrefix(path.Join(filePath, file), "/")
}

// PublicURL 返回对象的访问地址，未配置 public_host 时使用 bucket 的默认地址
func (s *S3) PublicURL(key string) string {
	if s.cfg.PublicHost != "" {
		return strings.TrimSuffix(s.cfg.PublicHost, "/") + "/" + key
	}
	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.cfg.Endpoint, "/"), s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}

func (s *S3) GenGetObjectPreSignURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := s3.NewPresignClient(s.client).PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// GenClientUploadKey 生成客户端直传使用的 PUT 地址
func (s *S3) GenClientUploadKey(ctx context.Context, filePath, file, contentType string, expires time.Duration) (key, url string, err error) {
	key = objectKey(filePath, file)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	req, err := s3.NewPresignClient(s.client).PresignPutObject(ctx, input, s3.WithPresignExpires(expires))
	if err != nil {
		return "", "", err
	}
	return key, req.URL, nil
}

func (s *S3) Upload(ctx context.Context, filePath, file, contentType string, body io.Reader) (string, error) {
	key := objectKey(filePath, file)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := manager.NewUploader(s.client).Upload(ctx, input); err != nil {
		return "", err
	}
	return key, nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	return err
}
