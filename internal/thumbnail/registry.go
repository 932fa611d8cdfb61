// Package thumbnail turns stored media into small JPEG previews. Generators
// are pluggable strategies registered once at startup and selected by file
// type; the registry tries them in priority order until one succeeds.
package thumbnail

import (
	"context"
	"errors"
	"io"
	"log"
	"sort"

	"github.com/mediastash/mediastash/internal/models"
)

// ErrNoThumbnail means no generator supports the file type, or every
// supporting generator failed. It is a degraded outcome, not a hard error:
// uploads proceed without a thumbnail.
var ErrNoThumbnail = errors.New("no thumbnail available")

// Generator produces a JPEG thumbnail from a media stream.
type Generator interface {
	// Supports reports whether this generator can handle the file type.
	Supports(ft models.FileType) bool

	// Generate reads the source and returns encoded JPEG bytes.
	Generate(ctx context.Context, src io.Reader) ([]byte, error)
}

// SourceFunc opens a fresh reader over the media being thumbnailed. The
// registry calls it once per generator attempt so a failed generator never
// hands a half-consumed stream to the next one.
type SourceFunc func(ctx context.Context) (io.ReadCloser, error)

type entry struct {
	priority int
	order    int // registration order, breaks priority ties
	gen      Generator
}

// Registry holds the generator list. Register during startup only; the
// list is read-only once requests are being served.
type Registry struct {
	entries []entry
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a generator. Lower priority runs first; equal priorities
// keep registration order.
func (r *Registry) Register(priority int, g Generator) {
	r.entries = append(r.entries, entry{priority: priority, order: len(r.entries), gen: g})
	sort.SliceStable(r.entries, func(i, j int) bool {
		if r.entries[i].priority != r.entries[j].priority {
			return r.entries[i].priority < r.entries[j].priority
		}
		return r.entries[i].order < r.entries[j].order
	})
}

// GenerateFor tries every generator supporting the file type in priority
// order and returns the first successful result. A generator error is
// logged and falls through to the next candidate so one broken adapter
// cannot disable thumbnailing entirely.
func (r *Registry) GenerateFor(ctx context.Context, ft models.FileType, open SourceFunc) ([]byte, error) {
	for _, e := range r.entries {
		if !e.gen.Supports(ft) {
			continue
		}
		data, err := r.tryGenerate(ctx, e.gen, open)
		if err != nil {
			log.Printf("Thumbnail generator %T failed for %s: %v", e.gen, ft, err)
			continue
		}
		return data, nil
	}
	return nil, ErrNoThumbnail
}

func (r *Registry) tryGenerate(ctx context.Context, g Generator, open SourceFunc) ([]byte, error) {
	src, err := open(ctx)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return g.Generate(ctx, src)
}
