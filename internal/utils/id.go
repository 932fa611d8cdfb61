package utils

import (
	"crypto/rand"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// GenerateSecureToken creates a cryptographically secure random token.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GenerateStorageKey mints a unique object key for an upload, keeping the
// original extension so content sniffers and transcoders stay happy.
func GenerateStorageKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	if len(ext) > 10 || strings.ContainsAny(ext, "/\\") {
		ext = ""
	}
	token, err := GenerateSecureToken(16)
	if err != nil {
		token = uuid.NewString()
	}
	return token + ext
}
