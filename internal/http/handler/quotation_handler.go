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

type QuotationHandler struct {
	quotationService *service.QuotationService
	logger           *zap.Logger
}

func NewQuotationHandler(quotationService *service.QuotationService, logger *zap.Logger) *QuotationHandler {
	return &QuotationHandler{
		quotationService: quotationService,
		logger:           logger,
	}
}

// List returns paginated quotations, filterable by quotation number
// search and by status.
func (h *QuotationHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	search := r.URL.Query().Get("search")

	var status domain.QuotationStatus
	if s := r.URL.Query().Get("status"); s != "" {
		status = domain.QuotationStatus(s)
		if !status.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid status filter")
			return
		}
	}

	result, err := h.quotationService.List(r.Context(), page, pageSize, search, status)
	if err != nil {
		respondServiceError(w, h.logger, "list quotations", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *QuotationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID format")
		return
	}

	quotation, err := h.quotationService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "get quotation", err)
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// Create persists a new quotation with its line items. A blank
// quotationNumber gets the next sequential number for the user.
func (h *QuotationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quotation, err := h.quotationService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "create quotation", err)
		return
	}

	w.Header().Set("Location", "/api/v1/quotations/"+quotation.ID.String())
	respondJSON(w, http.StatusCreated, quotation)
}

// Update replaces the quotation header and its full line-item set.
func (h *QuotationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID format")
		return
	}

	var req domain.SaveQuotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quotation, err := h.quotationService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, "update quotation", err)
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

func (h *QuotationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID format")
		return
	}

	if err := h.quotationService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, "delete quotation", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status domain.QuotationStatus `json:"status" validate:"required,oneof=draft sent accepted rejected expired"`
}

// UpdateStatus moves a quotation through its lifecycle. Illegal
// transitions are rejected with a 400.
func (h *QuotationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID format")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	quotation, err := h.quotationService.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, h.logger, "update quotation status", err)
		return
	}

	respondJSON(w, http.StatusOK, quotation)
}

// ExportPDF renders the quotation as a PDF document. The format query
// parameter overrides the stored visual format for this render only,
// and download=true switches the disposition from inline to attachment.
func (h *QuotationHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quotation ID format")
		return
	}

	var formatOverride domain.QuotationFormat
	if f := r.URL.Query().Get("format"); f != "" {
		formatOverride = domain.QuotationFormat(f)
		if !formatOverride.IsValid() {
			respondWithError(w, http.StatusBadRequest, "Invalid format: must be standard, compact or detailed")
			return
		}
	}

	data, fileName, err := h.quotationService.ExportPDF(r.Context(), id, formatOverride)
	if err != nil {
		respondServiceError(w, h.logger, "export quotation PDF", err)
		return
	}

	disposition := "inline"
	if r.URL.Query().Get("download") == "true" {
		disposition = "attachment"
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
