package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
)

// LocalStore implements Store over the local filesystem.
type LocalStore struct{}

// Fetch opens the file at location.
func (s *LocalStore) Fetch(_ context.Context, location string) (io.ReadCloser, error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", location, err)
	}
	return f, nil
}

// Put writes r to the file at location, replacing any existing content.
func (s *LocalStore) Put(_ context.Context, location string, r io.Reader) error {
	f, err := os.Create(location)
	if err != nil {
		return fmt.Errorf("create %s: %w", location, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", location, err)
	}
	return f.Close()
}
