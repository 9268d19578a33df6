package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

var ErrUnsupportedFileType = errors.New("unsupported file type")

type StorageService interface {
	SaveFile(file *multipart.FileHeader, prefix string) (string, error)
	DeleteFile(filePath string) error
	Exists(filePath string) bool
	IsAllowed(filename string) bool
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath        string
	allowedExtensions []string
}

func NewStorageService(uploadPath string, allowedExtensions []string) StorageService {
	return &storageService{
		uploadPath:        uploadPath,
		allowedExtensions: allowedExtensions,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

func (s *storageService) IsAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext != "" && slices.Contains(s.allowedExtensions, ext)
}

// SaveFile stores the upload under a generated name and returns its path.
func (s *storageService) SaveFile(file *multipart.FileHeader, prefix string) (string, error) {
	if !s.IsAllowed(file.Filename) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(file.Filename))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	uniqueFilename := fmt.Sprintf("%s_%s%s", prefix, uuid.New().String(), ext)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, nil
}

// DeleteFile removes a stored file. A file that is already gone is not an error.
func (s *storageService) DeleteFile(filePath string) error {
	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *storageService) Exists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}
