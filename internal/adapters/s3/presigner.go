// Package s3 exposes private bucket objects through presigned GET URLs.
package s3

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Asad13/ad-campaign-builder-backend/internal/ports"
)

// DefaultExpiry is used when Options.Expiry is not positive.
const DefaultExpiry = time.Hour

// Options configures a Presigner.
type Options struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	// Endpoint overrides the AWS endpoint (MinIO, localstack). Path-style
	// addressing is used when set.
	Endpoint string
	Expiry   time.Duration
}

// Presigner implements ports.URLSigner with S3 presigned GET requests.
type Presigner struct {
	bucket string
	expiry time.Duration
	client *s3.PresignClient
}

var _ ports.URLSigner = (*Presigner)(nil)

// NewPresigner builds an S3 client with static credentials. Signing is local
// and does not contact S3.
func NewPresigner(opts Options) (*Presigner, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 presigner: bucket is required")
	}
	if opts.Region == "" {
		return nil, errors.New("s3 presigner: region is required")
	}
	if opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, errors.New("s3 presigner: access key and secret are required")
	}

	cfg := aws.Config{
		Region:      opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(strings.TrimRight(opts.Endpoint, "/"))
			o.UsePathStyle = true
		}
	})

	expiry := opts.Expiry
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Presigner{
		bucket: opts.Bucket,
		expiry: expiry,
		client: s3.NewPresignClient(client),
	}, nil
}

// SignedURL returns a time-limited GET URL for key.
func (p *Presigner) SignedURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("s3 presigner: key is required")
	}
	req, err := p.client.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
