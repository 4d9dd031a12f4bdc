package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider represents the S3-compatible storage provider
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// Config holds configuration for S3-compatible storage
type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string

	// Endpoint overrides the default endpoint (required for Wasabi,
	// e.g. "s3.ap-southeast-1.wasabisys.com")
	Endpoint string

	// PublicBaseURL is the prefix under which uploaded objects are
	// publicly reachable. Defaults to the virtual-hosted bucket URL.
	PublicBaseURL string
}

// BlobStore is the object-storage gateway: put bytes, get a public URL,
// remove a blob. Avatars and resumes go through this interface.
type BlobStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(url string) string
}

type s3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store creates a blob store backed by AWS S3 or Wasabi.
func NewS3Store(ctx context.Context, cfg Config) (BlobStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	switch cfg.Provider {
	case ProviderWasabi:
		// Wasabi requires a custom endpoint and path-style addressing
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.Endpoint)
			o.UsePathStyle = true
		})
	default:
		client = s3.NewFromConfig(awsCfg)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &s3Store{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (s *s3Store) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}

func (s *s3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// KeyFromURL maps a previously returned public URL back to its object
// key. Returns "" for URLs outside this store.
func (s *s3Store) KeyFromURL(url string) string {
	if !strings.HasPrefix(url, s.baseURL+"/") {
		return ""
	}
	return strings.TrimPrefix(url, s.baseURL+"/")
}
