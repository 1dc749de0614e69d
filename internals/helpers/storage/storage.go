package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"regexp"
	"time"

	"github.com/google/uuid"

	"virtualab_backend/internals/constants"
)

// Storage persists validated uploads and returns a public URL.
// Local disk is the only implemented backend; "s3" is reserved.
type Storage interface {
	Save(ctx context.Context, name string, contentType string, r io.Reader) (url string, err error)
}

// NewFromConfig selects the backend by name.
func NewFromConfig(backend, dir, baseURL string) (Storage, error) {
	switch backend {
	case "local", "":
		return NewLocalStorage(dir, baseURL), nil
	case "s3":
		return nil, fmt.Errorf("storage backend %q is not implemented", backend)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// ValidateUpload enforces the allow-list and the size ceiling before
// anything touches disk.
func ValidateUpload(fh *multipart.FileHeader) error {
	if fh.Size > constants.MaxUploadBytes {
		return fmt.Errorf("file exceeds the %d byte limit", constants.MaxUploadBytes)
	}
	mime := fh.Header.Get("Content-Type")
	if !constants.IsAllowedUpload(mime, fh.Filename) {
		return fmt.Errorf("file type %q (%s) is not allowed", mime, fh.Filename)
	}
	return nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return unsafeFilenameChars.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename builds <folder>/<yyyymmdd>-<uuid>-<sanitized>.
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}
