package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/storage"
)

// Upload folders. Logos decorate the quotation header; product images
// appear on catalog entries and detailed-format line items.
const (
	FolderLogos    = "logos"
	FolderProducts = "products"
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// FileService stores uploaded images under <userID>/<folder>/ and
// returns their public URL.
type FileService struct {
	store     storage.Storage
	maxSizeMB int64
	logger    *zap.Logger
}

func NewFileService(store storage.Storage, maxSizeMB int64, logger *zap.Logger) *FileService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &FileService{
		store:     store,
		maxSizeMB: maxSizeMB,
		logger:    logger,
	}
}

// MaxUploadBytes is the upload size limit in bytes.
func (s *FileService) MaxUploadBytes() int64 {
	return s.maxSizeMB << 20
}

// UploadImage validates and stores an image, returning its public URL.
func (s *FileService) UploadImage(ctx context.Context, folder, contentType string, size int64, data io.Reader) (*domain.FileUploadResponse, error) {
	userCtx := auth.MustFromContext(ctx)

	if folder != FolderLogos && folder != FolderProducts {
		return nil, fmt.Errorf("%w: unknown upload folder %q", ErrInvalidInput, folder)
	}

	ext, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrUnsupportedFileType
	}

	if size > s.MaxUploadBytes() {
		return nil, ErrFileTooLarge
	}

	storagePath := path.Join(userCtx.UserID.String(), folder, uuid.New().String()+ext)

	written, err := s.store.Upload(ctx, storagePath, contentType, io.LimitReader(data, s.MaxUploadBytes()+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	if written > s.MaxUploadBytes() {
		// The declared size lied; remove the oversized blob.
		_ = s.store.Delete(ctx, storagePath)
		return nil, ErrFileTooLarge
	}

	s.logger.Info("image uploaded",
		zap.String("path", storagePath),
		zap.Int64("size", written),
	)

	return &domain.FileUploadResponse{
		URL:  s.store.PublicURL(storagePath),
		Size: written,
	}, nil
}
