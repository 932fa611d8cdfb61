package models

import (
	"time"

	"github.com/google/uuid"
)

type File struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OriginalName string    `json:"originalName" gorm:"not null"`
	ContentType  string    `json:"contentType" gorm:"not null"`
	Size         int64     `json:"size" gorm:"not null"` // bytes
	StorageKey   string    `json:"-" gorm:"uniqueIndex;not null"`
	ThumbnailKey *string   `json:"-"` // nil until a thumbnail is backfilled
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}

// HasThumbnail reports whether a thumbnail has been generated for this file.
func (f *File) HasThumbnail() bool {
	return f.ThumbnailKey != nil && *f.ThumbnailKey != ""
}
