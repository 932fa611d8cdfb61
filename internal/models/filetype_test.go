package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFileType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        FileType
	}{
		{"image png", "image/png", "photo.png", TypeImage},
		{"image with params", "image/jpeg; charset=binary", "photo.jpg", TypeImage},
		{"video mp4", "video/mp4", "clip.mp4", TypeVideo},
		{"audio mpeg", "audio/mpeg", "song.mp3", TypeAudio},
		{"pdf", "application/pdf", "doc.pdf", TypeDocument},
		{"plain text", "text/plain", "notes.txt", TypeDocument},
		{"zip", "application/zip", "bundle.zip", TypeArchive},
		{"gzip", "application/gzip", "bundle.tar.gz", TypeArchive},
		{"unknown type and extension", "application/x-mystery", "blob.xyzunknown", TypeOther},
		{"empty content type, known extension", "", "clip.mp4", TypeVideo},
		{"octet-stream falls back to extension", "application/octet-stream", "photo.png", TypeImage},
		{"octet-stream with unknown extension", "application/octet-stream", "blob.bin", TypeOther},
		{"no content type, no extension", "", "README", TypeOther},
		{"case insensitive", "IMAGE/PNG", "photo.png", TypeImage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFileType(tt.contentType, tt.filename))
		})
	}
}
