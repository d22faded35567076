package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"

	"github.com/khanh-pt/realworld/internal/pkg/cache"
)

// Client wraps the S3 client with presigned-URL functionality for uploads
// and downloads. Clients upload directly against the presigned URL; the
// server never proxies file bytes.
type Client struct {
	s3Client      *s3.Client
	presignClient *s3.PresignClient
	config        *Config
}

var (
	globalClient *Client
	setupOnce    sync.Once
)

// NewClient creates a new S3 storage client
func NewClient(cfg *Config) (*Client, error) {
	if !cfg.IsEnabled() {
		return nil, fmt.Errorf("object storage is not configured")
	}

	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			// MinIO and friends need path-style URLs
			o.UsePathStyle = true
			o.UseAccelerate = false
		}
	})

	return &Client{
		s3Client:      s3Client,
		presignClient: s3.NewPresignClient(s3Client),
		config:        cfg,
	}, nil
}

// SetupStorage initializes the global storage client from the environment
func SetupStorage() {
	setupOnce.Do(func() {
		client, err := NewClient(LoadConfigFromEnv())
		if err != nil {
			log.Warnf("[Storage] presigned URLs unavailable: %v", err)
			return
		}
		globalClient = client
		log.Infof("[Storage] initialized S3 client for bucket: %s", client.config.Bucket)
	})
}

// GetClient returns the global storage client, or nil when storage is not
// configured. Callers treat a nil client as "no URL available".
func GetClient() *Client {
	return globalClient
}

// PresignUpload returns a presigned PUT URL for the given object key. The
// content type and length are baked into the signature so the client cannot
// upload something other than what it declared.
func (c *Client) PresignUpload(ctx context.Context, key, contentType string, size int64) (string, error) {
	req, err := c.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.config.Bucket),
		Key:           aws.String(key),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}, s3.WithPresignExpires(c.config.SignedURLExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}
	return req.URL, nil
}

// PresignDownload returns a presigned GET URL for the given object key
func (c *Client) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := c.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.config.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.config.SignedURLExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download for %s: %w", key, err)
	}
	return req.URL, nil
}

// DownloadURL returns a presigned GET URL for the key, served from the Redis
// cache when possible. The cache TTL stays one minute below the URL expiry so
// a cached URL is never handed out already expired. Cache failures are logged
// and absorbed; the cache is non-authoritative.
func (c *Client) DownloadURL(ctx context.Context, key string) (string, error) {
	cacheKey := cache.SignedURLKey(key)
	if url, err := cache.Get(cacheKey); err == nil && url != "" {
		return url, nil
	}

	url, err := c.PresignDownload(ctx, key)
	if err != nil {
		return "", err
	}

	ttl := c.config.SignedURLExpiry - time.Minute
	if ttl > 0 {
		if err := cache.Set(cacheKey, url, ttl); err != nil {
			log.Warnf("[Storage] failed to cache signed URL for %s: %v", key, err)
		}
	}
	return url, nil
}
