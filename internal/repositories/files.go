package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mediastash/mediastash/internal/media"
	"github.com/mediastash/mediastash/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FileStore is the gorm-backed metadata store. It satisfies
// media.FileStore.
type FileStore struct {
	db *gorm.DB
}

func NewFileStore(db *gorm.DB) *FileStore {
	return &FileStore{db: db}
}

// Save inserts new metadata or updates the thumbnail backfill of an
// existing record.
func (s *FileStore) Save(ctx context.Context, file *models.File) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"thumbnail_key"}),
	}).Create(file).Error
	if err != nil {
		return fmt.Errorf("save file metadata: %w", err)
	}
	return nil
}

func (s *FileStore) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	var file models.File
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, media.ErrNotFound
		}
		return nil, fmt.Errorf("find file metadata: %w", err)
	}
	return &file, nil
}

// DeleteByID removes metadata; deleting an absent id is a no-op.
func (s *FileStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.File{}).Error
	if err != nil {
		return fmt.Errorf("delete file metadata: %w", err)
	}
	return nil
}

func (s *FileStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.File{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}
	return count, nil
}

// FindPage returns one page of metadata, newest first.
func (s *FileStore) FindPage(ctx context.Context, page, size int) ([]models.File, error) {
	var files []models.File
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&files).Error
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}
