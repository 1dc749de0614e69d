package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type LocalStorage struct {
	Dir     string
	BaseURL string
}

func NewLocalStorage(dir, baseURL string) *LocalStorage {
	return &LocalStorage{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStorage) Save(_ context.Context, name string, contentType string, r io.Reader) (string, error) {
	// name comes from GenerateUniqueFilename; reject anything that could
	// escape the upload dir anyway
	clean := filepath.Clean(name)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage name %q", name)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}

	// raster images are re-encoded to webp before hitting disk
	if contentType == "image/png" || contentType == "image/jpeg" {
		if converted, convErr := ConvertToWebp(data); convErr == nil {
			data = converted
			clean = replaceExt(clean, ".webp")
		}
	}

	target := filepath.Join(s.Dir, clean)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.BaseURL + "/" + filepath.ToSlash(clean), nil
}

func replaceExt(name, newExt string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + newExt
}
