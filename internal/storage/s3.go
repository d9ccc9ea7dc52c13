package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// S3Config configures an S3Bucket.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // optional, for S3-compatible services
	PublicURL string // optional CDN or public bucket URL
	Prefix    string
}

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Bucket stores objects in an S3 bucket.
type S3Bucket struct {
	client putObjectAPI
	cfg    S3Config
	logger zerolog.Logger
}

// NewS3Bucket creates an S3-backed bucket using the default AWS credential chain.
func NewS3Bucket(ctx context.Context, cfg S3Config, logger zerolog.Logger) (*S3Bucket, error) {
	logger = logger.With().Str("component", "s3-bucket").Logger()

	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info().
		Str("bucket", cfg.Bucket).
		Str("region", cfg.Region).
		Msg("S3 bucket initialised")

	return newS3Bucket(client, cfg, logger), nil
}

func newS3Bucket(client putObjectAPI, cfg S3Config, logger zerolog.Logger) *S3Bucket {
	return &S3Bucket{client: client, cfg: cfg, logger: logger}
}

// Upload puts data under the configured prefix.
func (b *S3Bucket) Upload(ctx context.Context, name string, data []byte, contentType string) error {
	key := b.key(name)

	input := &s3.PutObjectInput{
		Bucket:       aws.String(b.cfg.Bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(data),
		CacheControl: aws.String("public, max-age=3600"),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		b.logger.Error().
			Err(err).
			Str("bucket", b.cfg.Bucket).
			Str("key", key).
			Msg("failed to put object to S3")
		return fmt.Errorf("uploading object %s: %w", key, err)
	}

	b.logger.Debug().Str("key", key).Int("bytes", len(data)).Msg("object uploaded")
	return nil
}

// PublicURL returns the object's URL, preferring the configured public URL.
func (b *S3Bucket) PublicURL(name string) string {
	key := b.key(name)
	switch {
	case b.cfg.PublicURL != "":
		return strings.TrimSuffix(b.cfg.PublicURL, "/") + "/" + key
	case b.cfg.Endpoint != "":
		return strings.TrimSuffix(b.cfg.Endpoint, "/") + "/" + b.cfg.Bucket + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", b.cfg.Bucket, b.cfg.Region, key)
	}
}

func (b *S3Bucket) key(name string) string {
	return b.cfg.Prefix + name
}
