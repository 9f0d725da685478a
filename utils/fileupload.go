package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// AllowedImageFormats lists the accepted upload extensions
var AllowedImageFormats = []string{".jpg", ".jpeg", ".png", ".webp"}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	for _, allowed := range AllowedImageFormats {
		if ext == allowed {
			return nil
		}
	}

	return &FileUploadError{
		Code:    "INVALID_FILE_FORMAT",
		Message: fmt.Sprintf("Only %s files are allowed", strings.Join(AllowedImageFormats, ", ")),
	}
}

// CopyName rebases a colliding filename with a "_copy" suffix before the
// extension. The name is split on dots and rebuilt from the first two
// segments, so repeated collisions cascade: "x.png" -> "x_copy.png" ->
// "x_copy_copy.png".
func CopyName(filename string) string {
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return filename + "_copy"
	}
	return parts[0] + "_copy." + parts[1]
}

// SanitizeFilename strips any path components and spaces from an uploaded
// filename so it is safe to store
func SanitizeFilename(filename string) string {
	return strings.ReplaceAll(filepath.Base(filename), " ", "")
}

// ContentTypeFor returns the MIME type for a stored image filename
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
