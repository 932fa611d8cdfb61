package media

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the file id is unknown to the metadata store.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidFileType means the upload was rejected by the type policy.
	ErrInvalidFileType = errors.New("invalid file type")
)

// SizeExceededError is returned when a declared upload size violates the
// maximum-size policy. It is raised before any storage write happens.
type SizeExceededError struct {
	Actual int64
	Max    int64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("file size %d exceeds maximum %d", e.Actual, e.Max)
}

// StorageError wraps an I/O failure from the storage backend.
type StorageError struct {
	Op  string // "save", "open", "delete"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RangeNotSatisfiableError is returned when a syntactically valid Range
// header resolves outside the file. It carries the total size so the
// transport layer can answer with "Content-Range: bytes */<size>".
type RangeNotSatisfiableError struct {
	Size int64
}

func (e *RangeNotSatisfiableError) Error() string {
	return fmt.Sprintf("requested range not satisfiable (size %d)", e.Size)
}
