package storage

import (
	"strconv"
	"time"

	"github.com/khanh-pt/realworld/internal/pkg/env"
)

// Config holds the object storage settings for presigned URL issuance
type Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	EndpointURL     string
	SignedURLExpiry time.Duration
}

// LoadConfigFromEnv reads the storage configuration from the environment
func LoadConfigFromEnv() *Config {
	expirySeconds, err := strconv.Atoi(env.GetEnv("S3_SIGNED_URL_EXPIRES", "900"))
	if err != nil || expirySeconds <= 0 {
		expirySeconds = 900
	}

	return &Config{
		Region:          env.GetEnv("S3_REGION", "us-east-1"),
		Bucket:          env.GetEnv("S3_BUCKET_NAME", ""),
		AccessKeyID:     env.GetEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: env.GetEnv("S3_SECRET_ACCESS_KEY", ""),
		EndpointURL:     env.GetEnv("S3_ENDPOINT_URL", ""),
		SignedURLExpiry: time.Duration(expirySeconds) * time.Second,
	}
}

// IsEnabled reports whether enough configuration is present to talk to S3
func (c *Config) IsEnabled() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}
