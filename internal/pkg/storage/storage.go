package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where capture evidence and report exports land.
// Paths are storage-relative keys, never absolute filesystem paths.
type FileStorage interface {
	// Upload stores a file and returns its storage key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a stored file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file. Deleting a missing file is not an error.
	Delete(ctx context.Context, path string) error

	// GetURL returns a URL the file can be fetched from.
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists reports whether the key is present.
	Exists(ctx context.Context, path string) (bool, error)
}
