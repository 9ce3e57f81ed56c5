package objstore

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCSStore stores objects in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
}

// NewGCSStore connects to GCS. credentialsFile may be empty, in which case
// application default credentials are used.
func NewGCSStore(ctx context.Context, bucket, credentialsFile string) (*GCSStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("objstore: connect: %w", err)
	}

	return &GCSStore{client: client, bucket: bucket}, nil
}

func (s *GCSStore) Upload(ctx context.Context, path string, r io.Reader) error {
	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("objstore: upload %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("objstore: upload %s: %w", path, err)
	}
	return nil
}

func (s *GCSStore) Remove(ctx context.Context, paths []string) error {
	var firstErr error
	for _, p := range paths {
		if err := s.client.Bucket(s.bucket).Object(p).Delete(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("objstore: remove %s: %w", p, err)
		}
	}
	return firstErr
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}

// Ensure GCSStore implements Store at compile time.
var _ Store = (*GCSStore)(nil)
