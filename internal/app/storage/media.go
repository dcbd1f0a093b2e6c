package storage

import (
	"path/filepath"
	"strings"
	"time"

	"learnly/internal/pkg/errs"
)

const (
	// MaxFileSize bounds a single media upload.
	MaxFileSize = 50 << 20

	// PresignedURLDuration is the lifetime of issued upload and download URLs.
	PresignedURLDuration = 15 * time.Minute
)

// allowedMediaTypes maps the file extensions accepted for post media to the
// MIME types they must be declared with.
var allowedMediaTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".pdf":  "application/pdf",
}

// ValidateFileSize checks the declared upload size against MaxFileSize.
func ValidateFileSize(size int64) *errs.CustomError {
	if size <= 0 || size > MaxFileSize {
		return errs.NewError(errs.ErrFileSizeTooLarge, MaxFileSize>>20)
	}
	return nil
}

// ValidateFileType checks that the file extension is allowed and that the
// declared MIME type matches it. The extension drives the check; a mismatched
// MIME declaration is rejected rather than silently corrected.
func ValidateFileType(fileName, mimeType string) *errs.CustomError {
	ext := strings.ToLower(filepath.Ext(fileName))

	expected, ok := allowedMediaTypes[ext]
	if !ok || !strings.EqualFold(mimeType, expected) {
		return errs.NewError(errs.ErrFileTypeInvalid)
	}
	return nil
}
