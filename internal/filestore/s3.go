package filestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures the S3-compatible backend. BaseEndpoint is optional
// and supports MinIO-style deployments.
type S3Options struct {
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

// S3Store saves files as objects in an S3-compatible bucket. Stored paths
// have the same "/profile-images/<name>" shape as the local store.
type S3Store struct {
	client *s3.Client
	bucket string
}

// NewS3Store builds an S3 client from static credentials and returns a
// store bound to the configured bucket.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		// Path-style addressing is required by MinIO.
		o.UsePathStyle = opts.BaseEndpoint != ""
	})

	return &S3Store{client: client, bucket: opts.Bucket}, nil
}

// Save uploads data under the given file name and returns the stored path.
func (s *S3Store) Save(ctx context.Context, name string, data []byte) (string, error) {
	key := imageDir + "/" + name
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return "/" + key, nil
}

// Delete removes the object at the given stored path. S3 delete is
// idempotent, so deleting a missing object succeeds.
func (s *S3Store) Delete(ctx context.Context, path string) error {
	key := strings.TrimPrefix(path, "/")
	if key == "" {
		return fmt.Errorf("refusing to delete path %q", path)
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
