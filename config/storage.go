package config

import (
	"errors"
	"strings"
	"time"
)

// StorageConfig points at the private bucket holding profile pictures.
// Signing is disabled when BucketName is empty.
type StorageConfig struct {
	BucketName      string        `env:"BUCKET_NAME"`
	Region          string        `env:"BUCKET_REGION"`
	AccessKey       string        `env:"ACCESS_KEY"`
	SecretAccessKey string        `env:"SECRET_ACCESS_KEY"`
	SignedURLExpiry time.Duration `env:"SIGNED_URL_EXPIRATION_TIME" envDefault:"1h"`
	// Endpoint targets an S3-compatible store such as MinIO.
	Endpoint string `env:"ENDPOINT"`
}

// Sanitize trims values and applies the default expiry.
func (s *StorageConfig) Sanitize() {
	s.BucketName = strings.TrimSpace(s.BucketName)
	s.Region = strings.TrimSpace(s.Region)
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	if s.SignedURLExpiry <= 0 {
		s.SignedURLExpiry = time.Hour
	}
}

// Enabled reports whether a bucket is configured.
func (s *StorageConfig) Enabled() bool { return s.BucketName != "" }

// Validate requires region and credentials once a bucket is named.
func (s *StorageConfig) Validate() error {
	if !s.Enabled() {
		return nil
	}
	var errs []error
	if s.Region == "" {
		errs = append(errs, errors.New("AWS_BUCKET_REGION is required when AWS_BUCKET_NAME is set"))
	}
	if s.AccessKey == "" || s.SecretAccessKey == "" {
		errs = append(errs, errors.New("AWS_ACCESS_KEY and AWS_SECRET_ACCESS_KEY are required when AWS_BUCKET_NAME is set"))
	}
	return errors.Join(errs...)
}
