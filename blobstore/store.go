package blobstore

import (
	"context"
	"errors"
	"os"
	"path"
	"strings"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// ErrInvalidName is returned for empty names and names escaping the store root.
var ErrInvalidName = errors.New("blobstore: invalid blob name")

// BlobStore is an abstraction for storing immutable data blobs.
type BlobStore interface {
	// Put writes a blob atomically, replacing any blob with the same name.
	Put(ctx context.Context, name string, data []byte) error
	// Get reads a whole blob.
	Get(ctx context.Context, name string) ([]byte, error)
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns all blob names with the given prefix in sorted order.
	List(ctx context.Context, prefix string) ([]string, error)
}

// CleanName normalizes a blob name and rejects names that are empty or
// point outside the store.
func CleanName(name string) (string, error) {
	if name == "" || strings.HasPrefix(name, "/") {
		return "", ErrInvalidName
	}
	clean := path.Clean(name)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidName
	}
	return clean, nil
}
