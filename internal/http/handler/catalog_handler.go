package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/service"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	importService  *service.ImportService
	maxUploadMB    int64
	logger         *zap.Logger
}

func NewCatalogHandler(catalogService *service.CatalogService, importService *service.ImportService, maxUploadMB int64, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		importService:  importService,
		maxUploadMB:    maxUploadMB,
		logger:         logger,
	}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	search := r.URL.Query().Get("search")

	result, err := h.catalogService.List(r.Context(), page, pageSize, search)
	if err != nil {
		respondServiceError(w, h.logger, "list catalog products", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *CatalogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.catalogService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "get catalog product", err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveCatalogProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "create catalog product", err)
		return
	}

	w.Header().Set("Location", "/api/v1/products/"+product.ID.String())
	respondJSON(w, http.StatusCreated, product)
}

func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req domain.SaveCatalogProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	product, err := h.catalogService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, "update catalog product", err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.catalogService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, "delete catalog product", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import ingests a CSV or Excel file of catalog products. Valid rows
// are accepted even when other rows fail, and per-row errors come back
// in the response body.
func (h *CatalogHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadMB * 1024 * 1024); err != nil {
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File too large: maximum size is %dMB", h.maxUploadMB))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid file upload: file field is required")
		return
	}
	defer file.Close()

	result, err := h.importService.Import(r.Context(), file, header.Filename)
	if err != nil {
		respondServiceError(w, h.logger, "import catalog products", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Template serves a downloadable import template. The format query
// parameter selects csv (default) or xlsx.
func (h *CatalogHandler) Template(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var (
		data        []byte
		contentType string
		fileName    string
		err         error
	)

	switch format {
	case "csv":
		data, err = h.importService.GenerateCSVTemplate()
		contentType = "text/csv; charset=utf-8"
		fileName = "plantilla_productos.csv"
	case "xlsx":
		data, err = h.importService.GenerateExcelTemplate()
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		fileName = "plantilla_productos.xlsx"
	default:
		respondWithError(w, http.StatusBadRequest, "Invalid template format: must be csv or xlsx")
		return
	}

	if err != nil {
		respondServiceError(w, h.logger, "generate import template", err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
