package constants

import (
	"path/filepath"
	"strings"
)

// Upload ceiling: anything bigger is rejected before touching disk.
const MaxUploadBytes = 10 << 20 // 10 MiB

// AllowedUploadTypes maps accepted mime types to their expected extensions.
var AllowedUploadTypes = map[string][]string{
	"image/png":       {".png"},
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/webp":      {".webp"},
	"application/pdf": {".pdf"},
	"text/csv":        {".csv"},
	"application/zip": {".zip"},
	"video/mp4":       {".mp4"},
}

func IsAllowedUpload(mime, filename string) bool {
	exts, ok := AllowedUploadTypes[strings.ToLower(strings.TrimSpace(mime))]
	if !ok {
		return false
	}
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

func DetectFileKindFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return 1 // Image
	case ".pdf":
		return 2 // PDF
	case ".csv":
		return 3 // Dataset
	case ".zip":
		return 4 // Archive
	case ".mp4":
		return 5 // Video
	default:
		return 99 // Unknown
	}
}
