package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/config"
)

// Storage defines the interface for file storage operations. Callers
// choose the storage path; uploaded images are public-read so they can
// be embedded in quotations.
type Storage interface {
	Upload(ctx context.Context, storagePath string, contentType string, data io.Reader) (int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
	// PublicURL returns the externally reachable URL of a stored file.
	PublicURL(storagePath string) string
}

// NewStorage creates a new storage instance based on configuration.
// For local mode, files are stored on the local filesystem and served
// by the API under /files/. For cloud/azure mode, files are stored in
// Azure Blob Storage.
func NewStorage(cfg *config.StorageConfig, publicBaseURL string, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local":
		return NewLocalStorage(cfg.LocalBasePath, publicBaseURL)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(cfg.CloudConnectionString, cfg.CloudContainer, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath      string
	publicBaseURL string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath, publicBaseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath:      basePath,
		publicBaseURL: strings.TrimSuffix(publicBaseURL, "/"),
	}, nil
}

// Upload writes a file under the base path
func (s *LocalStorage) Upload(ctx context.Context, storagePath string, contentType string, data io.Reader) (int64, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return 0, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	size, err := io.Copy(file, data)
	if err != nil {
		os.Remove(fullPath) // Cleanup on error
		return 0, fmt.Errorf("failed to write file: %w", err)
	}

	return size, nil
}

// Download opens a stored file
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", storagePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes a stored file
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(storagePath))

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// PublicURL builds the URL the API serves local files under
func (s *LocalStorage) PublicURL(storagePath string) string {
	return s.publicBaseURL + "/" + path.Join("files", storagePath)
}

// BasePath exposes the storage root for the static file route
func (s *LocalStorage) BasePath() string {
	return s.basePath
}
