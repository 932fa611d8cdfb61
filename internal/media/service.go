package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mediastash/mediastash/internal/config"
	"github.com/mediastash/mediastash/internal/models"
	"github.com/mediastash/mediastash/internal/storage"
	"github.com/mediastash/mediastash/internal/thumbnail"
	"github.com/mediastash/mediastash/internal/utils"
)

// FileStore persists file metadata. Implementations must return ErrNotFound
// for unknown ids and treat DeleteByID of an absent id as a no-op.
type FileStore interface {
	Save(ctx context.Context, file *models.File) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.File, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	FindPage(ctx context.Context, page, size int) ([]models.File, error)
}

// Service coordinates storage, metadata, and thumbnail generation. It is
// the only place in the system with multi-step partial-failure semantics:
// storage and metadata writes are required, thumbnailing is best-effort.
type Service struct {
	store      FileStore
	storage    storage.Storage
	thumbnails *thumbnail.Registry
	policy     config.UploadConfig
}

func NewService(store FileStore, st storage.Storage, reg *thumbnail.Registry, policy config.UploadConfig) *Service {
	return &Service{
		store:      store,
		storage:    st,
		thumbnails: reg,
		policy:     policy,
	}
}

// Upload persists the source stream and its metadata, then attempts a
// thumbnail. Metadata is written only after the storage write commits, so a
// concurrent Stream of the new id observes NotFound until the upload is
// fully visible. Thumbnail failures never fail the upload.
func (s *Service) Upload(ctx context.Context, originalName, contentType string, size int64, src io.Reader) (*models.File, error) {
	fileType := models.ClassifyFileType(contentType, originalName)
	if fileType == models.TypeOther && !s.policy.AllowOther {
		return nil, ErrInvalidFileType
	}
	if s.policy.MaxSize > 0 && size > s.policy.MaxSize {
		return nil, &SizeExceededError{Actual: size, Max: s.policy.MaxSize}
	}

	key := utils.GenerateStorageKey(originalName)
	if err := s.storage.Save(ctx, key, src, size); err != nil {
		return nil, &StorageError{Op: "save", Err: err}
	}

	file := &models.File{
		ID:           uuid.New(),
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         size,
		StorageKey:   key,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.Save(ctx, file); err != nil {
		// Compensate so a failed upload leaves no orphaned object behind.
		if derr := s.storage.Delete(ctx, key); derr != nil {
			log.Printf("Failed to clean up object %s after metadata error: %v", key, derr)
		}
		return nil, err
	}

	s.generateThumbnail(ctx, file, fileType)

	return file, nil
}

// generateThumbnail runs the best-effort phase of an upload. Every failure
// path logs and returns; none of them reaches the caller.
func (s *Service) generateThumbnail(ctx context.Context, file *models.File, fileType models.FileType) {
	if s.thumbnails == nil {
		return
	}

	data, err := s.thumbnails.GenerateFor(ctx, fileType, func(ctx context.Context) (io.ReadCloser, error) {
		return s.storage.OpenFull(ctx, file.StorageKey)
	})
	if err != nil {
		if errors.Is(err, thumbnail.ErrNoThumbnail) {
			log.Printf("No thumbnail for %s (%s)", file.ID, fileType)
		} else {
			log.Printf("Thumbnail generation failed for %s: %v", file.ID, err)
		}
		return
	}

	thumbKey := file.StorageKey + ".thumb.jpg"
	if err := s.storage.Save(ctx, thumbKey, bytes.NewReader(data), int64(len(data))); err != nil {
		log.Printf("Failed to store thumbnail for %s: %v", file.ID, err)
		return
	}
	file.ThumbnailKey = &thumbKey
	if err := s.store.Save(ctx, file); err != nil {
		log.Printf("Failed to backfill thumbnail key for %s: %v", file.ID, err)
		file.ThumbnailKey = nil
		if derr := s.storage.Delete(ctx, thumbKey); derr != nil {
			log.Printf("Failed to clean up thumbnail %s: %v", thumbKey, derr)
		}
	}
}

// Get returns the metadata for a single file.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.File, error) {
	return s.store.FindByID(ctx, id)
}

// List returns one page of metadata, newest first, plus the total count.
func (s *Service) List(ctx context.Context, page, size int) ([]models.File, int64, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	files, err := s.store.FindPage(ctx, page, size)
	if err != nil {
		return nil, 0, err
	}
	return files, total, nil
}

// Delete removes the file's storage artifacts and metadata together.
// Deleting an unknown id is a no-op, so calling it twice never errors.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	file, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if file.HasThumbnail() {
		if err := s.storage.Delete(ctx, *file.ThumbnailKey); err != nil {
			log.Printf("Failed to delete thumbnail %s: %v", *file.ThumbnailKey, err)
		}
	}
	if err := s.storage.Delete(ctx, file.StorageKey); err != nil {
		return &StorageError{Op: "delete", Err: err}
	}
	return s.store.DeleteByID(ctx, id)
}
