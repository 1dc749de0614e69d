package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func header(name string, size int64, contentType string) *multipart.FileHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	return &multipart.FileHeader{Filename: name, Size: size, Header: h}
}

func TestValidateUploadAllowList(t *testing.T) {
	if err := ValidateUpload(header("report.pdf", 1024, "application/pdf")); err != nil {
		t.Errorf("pdf rejected: %v", err)
	}
	if err := ValidateUpload(header("payload.exe", 1024, "application/x-msdownload")); err == nil {
		t.Error("executable accepted")
	}
	// right mime, wrong extension
	if err := ValidateUpload(header("report.exe", 1024, "application/pdf")); err == nil {
		t.Error("mime/extension mismatch accepted")
	}
}

func TestValidateUploadSizeCeiling(t *testing.T) {
	if err := ValidateUpload(header("big.pdf", 11<<20, "application/pdf")); err == nil {
		t.Error("oversize file accepted")
	}
	if err := ValidateUpload(header("ok.pdf", 10<<20, "application/pdf")); err != nil {
		t.Errorf("file at the ceiling rejected: %v", err)
	}
}

func TestGenerateUniqueFilenameShape(t *testing.T) {
	name := GenerateUniqueFilename("lab", "my report (final).pdf")

	if !strings.HasPrefix(name, "lab/") {
		t.Errorf("name = %q, want folder prefix", name)
	}
	if strings.Contains(name, " ") || strings.Contains(name, "(") {
		t.Errorf("name = %q, unsafe characters not sanitized", name)
	}
	// runs of unsafe characters collapse into a single underscore
	pattern := regexp.MustCompile(`^lab/\d{8}-[0-9a-f-]{36}-my_report_final_\.pdf$`)
	if !pattern.MatchString(name) {
		t.Errorf("name = %q does not match <folder>/<date>-<uuid>-<sanitized>", name)
	}

	if name == GenerateUniqueFilename("lab", "my report (final).pdf") {
		t.Error("two generated names collided")
	}
}

func TestLocalStorageSaveWritesFileAndReturnsURL(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads/")

	url, err := s.Save(context.Background(), "lab/data.csv", "text/csv", bytes.NewReader([]byte("a,b\n1,2\n")))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if url != "/uploads/lab/data.csv" {
		t.Errorf("url = %q", url)
	}

	written, err := os.ReadFile(filepath.Join(dir, "lab", "data.csv"))
	if err != nil {
		t.Fatalf("file missing: %v", err)
	}
	if string(written) != "a,b\n1,2\n" {
		t.Errorf("content = %q", written)
	}
}

func TestLocalStorageRejectsEscapingNames(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "/uploads")

	for _, name := range []string{"../evil.csv", "/etc/passwd"} {
		if _, err := s.Save(context.Background(), name, "text/csv", bytes.NewReader([]byte("x"))); err == nil {
			t.Errorf("name %q accepted", name)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("rejected saves wrote %d entries", len(entries))
	}
}

func TestNewFromConfigBackends(t *testing.T) {
	if _, err := NewFromConfig("local", "./uploads", "/uploads"); err != nil {
		t.Errorf("local backend: %v", err)
	}
	if _, err := NewFromConfig("", "./uploads", "/uploads"); err != nil {
		t.Errorf("default backend: %v", err)
	}
	if _, err := NewFromConfig("s3", "", ""); err == nil {
		t.Error("s3 must be an explicit not-implemented error")
	}
	if _, err := NewFromConfig("ftp", "", ""); err == nil {
		t.Error("unknown backend accepted")
	}
}
