package media

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Content pairs a lazily opened, bounded byte stream with the HTTP
// semantics needed to answer a download or streaming request. Nothing is
// read from storage until Open is called; the caller owns the returned
// body and must close it on every exit path.
type Content struct {
	ContentType string
	TotalSize   int64
	Range       *RangeSpec // nil means full content
	Open        func(ctx context.Context) (io.ReadCloser, error)
}

// Partial reports whether this content answers a byte-range request.
func (c *Content) Partial() bool { return c.Range != nil }

// Stream resolves a stored file and an optional Range header into Content.
// Unknown ids yield ErrNotFound; out-of-bounds ranges yield
// RangeNotSatisfiableError carrying the total size.
func (s *Service) Stream(ctx context.Context, id uuid.UUID, rangeHeader string) (*Content, error) {
	file, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	spec, err := ResolveRange(rangeHeader, file.Size)
	if err != nil {
		return nil, err
	}

	key := file.StorageKey
	content := &Content{
		ContentType: file.ContentType,
		TotalSize:   file.Size,
		Range:       spec,
	}
	if spec == nil {
		content.Open = func(ctx context.Context) (io.ReadCloser, error) {
			rc, err := s.storage.OpenFull(ctx, key)
			if err != nil {
				return nil, &StorageError{Op: "open", Err: err}
			}
			return rc, nil
		}
		return content, nil
	}

	start, end := spec.Start, spec.End
	content.Open = func(ctx context.Context) (io.ReadCloser, error) {
		rc, err := s.storage.OpenRange(ctx, key, start, end)
		if err != nil {
			return nil, &StorageError{Op: "open", Err: err}
		}
		// Truncate at the resolved boundary even if the backend
		// over-delivers.
		return &boundedBody{rc: rc, r: io.LimitReader(rc, end-start+1)}, nil
	}
	return content, nil
}

// Thumbnail returns the stored thumbnail for a file as full Content.
// Files without a thumbnail yield ErrNotFound; the absence of a thumbnail
// is a valid state, not a failure.
func (s *Service) Thumbnail(ctx context.Context, id uuid.UUID) (*Content, error) {
	file, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !file.HasThumbnail() {
		return nil, fmt.Errorf("no thumbnail for %s: %w", id, ErrNotFound)
	}

	key := *file.ThumbnailKey
	return &Content{
		ContentType: "image/jpeg",
		Open: func(ctx context.Context) (io.ReadCloser, error) {
			rc, err := s.storage.OpenFull(ctx, key)
			if err != nil {
				return nil, &StorageError{Op: "open", Err: err}
			}
			return rc, nil
		},
	}, nil
}

type boundedBody struct {
	rc io.ReadCloser
	r  io.Reader
}

func (b *boundedBody) Read(p []byte) (int, error) { return b.r.Read(p) }
func (b *boundedBody) Close() error               { return b.rc.Close() }
