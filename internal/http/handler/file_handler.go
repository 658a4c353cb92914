package handler

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/service"
)

type FileHandler struct {
	fileService *service.FileService
	logger      *zap.Logger
}

func NewFileHandler(fileService *service.FileService, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		logger:      logger,
	}
}

// Upload stores an image under the authenticated user's namespace and
// returns its public URL. The folder form field chooses between logo
// and product images.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.fileService.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", maxBytes/(1024*1024)))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = service.FolderProducts
	}

	result, err := h.fileService.UploadImage(r.Context(), folder, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondServiceError(w, h.logger, "upload image", err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}
