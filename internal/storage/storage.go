// Package storage holds freelancer profile images in S3-compatible object
// storage (MinIO in development). Clients upload and fetch images through
// short-lived presigned URLs; the API server never proxies image bytes.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// TTLs for presigned URLs
const (
	UploadURLTTL   = 15 * time.Minute
	DownloadURLTTL = 1 * time.Hour
)

// Service defines the interface for profile-image storage operations
type Service interface {
	// PresignUpload creates a time-limited URL for uploading an image
	PresignUpload(ctx context.Context, key, contentType string) (string, error)

	// PresignDownload creates a time-limited URL for fetching an image
	PresignDownload(ctx context.Context, key string) (string, error)

	// Delete removes an image from the bucket
	Delete(ctx context.Context, key string) error

	// Health checks whether the bucket is reachable
	Health(ctx context.Context) error
}

type service struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
}

// New creates a storage service from S3_* environment variables. The server
// treats storage as optional: when S3_ENDPOINT is unset the caller should
// skip initialization and the image endpoints respond 503.
func New(ctx context.Context) (Service, error) {
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	bucket := os.Getenv("S3_BUCKET_NAME")

	if endpoint == "" {
		return nil, fmt.Errorf("S3_ENDPOINT environment variable is required")
	}
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY environment variables are required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME environment variable is required")
	}

	protocol := "http"
	if os.Getenv("S3_USE_SSL") == "true" {
		protocol = "https"
	}
	endpointURL := fmt.Sprintf("%s://%s", protocol, endpoint)

	resolver := aws.EndpointResolverWithOptionsFunc(
		func(svc, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               endpointURL,
				SigningRegion:     "us-east-1",
				HostnameImmutable: true,
			}, nil
		},
	)

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion("us-east-1"),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Path-style addressing is required for MinIO
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	s := &service{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
	}

	if err := s.ensureBucket(ctx); err != nil {
		slog.Warn("Failed to ensure storage bucket exists", "bucket", bucket, "error", err)
	}

	return s, nil
}

func (s *service) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	slog.Info("Created storage bucket", "bucket", s.bucket)
	return nil
}

func (s *service) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key cannot be empty")
	}
	if contentType == "" {
		return "", fmt.Errorf("content type cannot be empty")
	}

	request, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = UploadURLTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}

	return request.URL, nil
}

func (s *service) PresignDownload(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("object key cannot be empty")
	}

	request, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = DownloadURLTTL
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign download for %s: %w", key, err)
	}

	return request.URL, nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("object key cannot be empty")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

// Health checks storage accessibility via a bucket head request
func (s *service) Health(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
