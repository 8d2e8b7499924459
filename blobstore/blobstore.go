package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Store abstracts where datasets and result dumps live.
type Store interface {
	// Fetch opens the object at location for reading.
	Fetch(ctx context.Context, location string) (io.ReadCloser, error)
	// Put writes the contents of r to location.
	Put(ctx context.Context, location string, r io.Reader) error
}

// Resolve picks the store matching the location scheme.
func Resolve(ctx context.Context, location string) (Store, error) {
	if strings.HasPrefix(location, "s3://") {
		return NewS3Store(ctx)
	}
	return &LocalStore{}, nil
}

// splitS3 parses an s3://bucket/key location.
func splitS3(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location %q must look like s3://bucket/key", location)
	}
	return bucket, key, nil
}
