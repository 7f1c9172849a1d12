package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	appordering "github.com/shopadmin/backend/internal/application/ordering"
	infraconfig "github.com/shopadmin/backend/internal/infrastructure/config"
)

// S3SlipStorage implements SlipStorage on AWS S3. It is compatible with
// any S3-compatible backend that honors the standard object URL layout.
type S3SlipStorage struct {
	client  *s3.Client
	bucket  string
	prefix  string
	baseURL string
	logger  *zap.Logger
}

// S3SlipStorageOption is a functional option for configuring S3SlipStorage
type S3SlipStorageOption func(*S3SlipStorage)

// WithLogger sets a custom logger for S3SlipStorage
func WithLogger(logger *zap.Logger) S3SlipStorageOption {
	return func(s *S3SlipStorage) {
		s.logger = logger
	}
}

// NewS3SlipStorage creates a new S3SlipStorage from configuration.
// Credentials come from the default AWS credential chain.
func NewS3SlipStorage(cfg infraconfig.UploadsConfig, opts ...S3SlipStorageOption) (*S3SlipStorage, error) {
	if cfg.S3Bucket == "" {
		return nil, errors.New("uploads bucket is required")
	}

	region := cfg.S3Region
	if region == "" {
		region = "us-east-1"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	baseURL := strings.TrimSuffix(cfg.S3BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, region)
	}

	storage := &S3SlipStorage{
		client:  s3.NewFromConfig(awsCfg),
		bucket:  cfg.S3Bucket,
		prefix:  strings.Trim(cfg.S3Prefix, "/"),
		baseURL: baseURL,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(storage)
	}

	return storage, nil
}

// NewS3SlipStorageWithClient creates a storage around an existing client.
// Useful for testing or when sharing a client across components.
func NewS3SlipStorageWithClient(client *s3.Client, bucket, prefix, baseURL string) *S3SlipStorage {
	return &S3SlipStorage{
		client:  client,
		bucket:  bucket,
		prefix:  strings.Trim(prefix, "/"),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  zap.NewNop(),
	}
}

// Store uploads content and returns the object URL
func (s *S3SlipStorage) Store(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error) {
	name := sanitizeFilename(filename)
	if name == "" {
		return "", errors.New("filename is required")
	}
	key := s.objectKey(name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          content,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload slip: %w", err)
	}

	s.logger.Debug("stored payment slip",
		zap.String("bucket", s.bucket),
		zap.String("key", key),
	)
	return s.baseURL + "/" + key, nil
}

// Remove deletes the object behind slipURL. DeleteObject succeeds on
// missing keys, so removal is idempotent.
func (s *S3SlipStorage) Remove(ctx context.Context, slipURL string) error {
	key, err := s.keyFromURL(slipURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete slip: %w", err)
	}
	return nil
}

func (s *S3SlipStorage) objectKey(name string) string {
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

func (s *S3SlipStorage) keyFromURL(slipURL string) (string, error) {
	parsed, err := url.Parse(slipURL)
	if err != nil {
		return "", fmt.Errorf("invalid slip url: %w", err)
	}
	key := strings.TrimPrefix(parsed.Path, "/")
	if key == "" {
		return "", errors.New("invalid slip url")
	}
	return key, nil
}

// Ensure S3SlipStorage implements SlipStorage
var _ appordering.SlipStorage = (*S3SlipStorage)(nil)
