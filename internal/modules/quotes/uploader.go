// Package quotes submits quote requests for finished configurations.
package quotes

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// Uploader stores one quote artifact under key
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
}

// objectUploader is the part of manager.Uploader we use
type objectUploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Uploader writes quote artifacts to an S3 bucket
type S3Uploader struct {
	uploader objectUploader
	bucket   string
	log      zerolog.Logger
}

// NewS3Uploader creates an uploader for bucket using the default AWS credential chain
func NewS3Uploader(ctx context.Context, bucket, region string, log zerolog.Logger) (*S3Uploader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newS3Uploader(manager.NewUploader(s3.NewFromConfig(cfg)), bucket, log), nil
}

func newS3Uploader(uploader objectUploader, bucket string, log zerolog.Logger) *S3Uploader {
	return &S3Uploader{
		uploader: uploader,
		bucket:   bucket,
		log:      log.With().Str("component", "quote_uploader").Str("bucket", bucket).Logger(),
	}
}

// Upload puts body into the bucket
func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body []byte) error {
	out, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	u.log.Debug().Str("key", key).Str("location", out.Location).Int("bytes", len(body)).Msg("Uploaded quote artifact")
	return nil
}

// NopUploader accepts every artifact without storing it.
// Used when no bucket is configured.
type NopUploader struct {
	log zerolog.Logger
}

// NewNopUploader creates a NopUploader
func NewNopUploader(log zerolog.Logger) *NopUploader {
	return &NopUploader{log: log.With().Str("component", "quote_uploader").Logger()}
}

// Upload logs and discards body
func (u *NopUploader) Upload(_ context.Context, key, _ string, body []byte) error {
	u.log.Info().Str("key", key).Int("bytes", len(body)).Msg("No quote bucket configured, artifact not stored")
	return nil
}
