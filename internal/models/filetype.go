package models

import (
	"mime"
	"path/filepath"
	"strings"
)

// FileType is the closed classification used for thumbnail capability
// matching and upload policy. It is derived, never stored.
type FileType string

const (
	TypeImage    FileType = "image"
	TypeVideo    FileType = "video"
	TypeAudio    FileType = "audio"
	TypeDocument FileType = "document"
	TypeArchive  FileType = "archive"
	TypeOther    FileType = "other"
)

var archiveTypes = map[string]bool{
	"application/zip":              true,
	"application/x-tar":            true,
	"application/gzip":             true,
	"application/x-gzip":           true,
	"application/x-7z-compressed":  true,
	"application/x-rar-compressed": true,
	"application/vnd.rar":          true,
	"application/x-bzip2":          true,
}

var documentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
	"application/rtf":  true,
	"application/json": true,
}

// ClassifyFileType maps a declared content type to a FileType, falling back
// to the filename extension when the content type is missing or generic.
func ClassifyFileType(contentType, filename string) FileType {
	ct := normalizeContentType(contentType)
	if ct == "" || ct == "application/octet-stream" {
		ct = normalizeContentType(mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))))
	}
	switch {
	case ct == "":
		return TypeOther
	case strings.HasPrefix(ct, "image/"):
		return TypeImage
	case strings.HasPrefix(ct, "video/"):
		return TypeVideo
	case strings.HasPrefix(ct, "audio/"):
		return TypeAudio
	case strings.HasPrefix(ct, "text/"), documentTypes[ct]:
		return TypeDocument
	case archiveTypes[ct]:
		return TypeArchive
	default:
		return TypeOther
	}
}

// strips parameters like "; charset=utf-8" and lowercases the media type
func normalizeContentType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(ct); err == nil {
		return parsed
	}
	return strings.ToLower(ct)
}
