package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Store implements Store for s3://bucket/key locations.
type S3Store struct {
	client   *s3.Client
	uploader *manager.Uploader
}

// NewS3Store builds a store from the ambient AWS configuration (environment,
// shared config files, instance metadata).
func NewS3Store(ctx context.Context) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg)
	return &S3Store{
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

// Fetch streams the object at an s3://bucket/key location.
func (s *S3Store) Fetch(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := splitS3(location)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}
	return out.Body, nil
}

// Put uploads r to an s3://bucket/key location.
func (s *S3Store) Put(ctx context.Context, location string, r io.Reader) error {
	bucket, key, err := splitS3(location)
	if err != nil {
		return err
	}
	if _, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   r,
	}); err != nil {
		return fmt.Errorf("put %s: %w", location, err)
	}
	return nil
}
