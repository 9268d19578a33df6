package services

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStorageService_IsAllowed(t *testing.T) {
	s := NewStorageService(t.TempDir(), []string{".pdf", ".docx"})

	tests := []struct {
		filename string
		want     bool
	}{
		{"resume.pdf", true},
		{"RESUME.PDF", true},
		{"cv.docx", true},
		{"cv.doc", false},
		{"notes.txt", false},
		{"pdf", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := s.IsAllowed(tt.filename); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestStorageService_SaveAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	s := NewStorageService(dir, []string{".pdf"})
	if err := s.EnsureUploadDir(); err != nil {
		t.Fatalf("EnsureUploadDir() error = %v", err)
	}

	path, err := s.SaveFile(newFileHeader(t, "My Resume.PDF", []byte("%PDF-1.4")), "resume")
	if err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "resume_") || !strings.HasSuffix(base, ".pdf") {
		t.Errorf("SaveFile() name = %q, want resume_<uuid>.pdf", base)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("SaveFile() dir = %q, want %q", filepath.Dir(path), dir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "%PDF-1.4" {
		t.Errorf("stored content = %q", data)
	}
	if !s.Exists(path) {
		t.Error("Exists() = false after save")
	}

	if err := s.DeleteFile(path); err != nil {
		t.Fatalf("DeleteFile() error = %v", err)
	}
	if s.Exists(path) {
		t.Error("Exists() = true after delete")
	}
	if err := s.DeleteFile(path); err != nil {
		t.Errorf("DeleteFile() on missing file error = %v, want nil", err)
	}
}

func TestStorageService_SaveRejectsExtension(t *testing.T) {
	s := NewStorageService(t.TempDir(), []string{".pdf"})

	_, err := s.SaveFile(newFileHeader(t, "resume.exe", []byte("MZ")), "resume")
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("SaveFile() error = %v, want ErrUnsupportedFileType", err)
	}
}

func TestStorageService_ExistsDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewStorageService(dir, nil)
	if s.Exists(dir) {
		t.Error("Exists() = true for a directory")
	}
}
