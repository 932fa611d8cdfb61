package storage

import (
	"context"
	"io"
)

// Storage is the byte-stream contract the media pipeline runs on. Keys are
// opaque location tokens minted at upload time; implementations must be safe
// for concurrent use across distinct keys.
type Storage interface {
	// Save persists exactly size bytes from r under key.
	Save(ctx context.Context, key string, r io.Reader, size int64) error

	// OpenFull opens a reader over the whole object. The caller owns the
	// returned reader and must close it.
	OpenFull(ctx context.Context, key string) (io.ReadCloser, error)

	// OpenRange opens a reader over the inclusive byte range [start, end].
	// The reader yields exactly end-start+1 bytes.
	OpenRange(ctx context.Context, key string, start, end int64) (io.ReadCloser, error)

	// Delete removes the object. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
