package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/service"
)

type CompanyHandler struct {
	companyService *service.CompanyService
	logger         *zap.Logger
}

func NewCompanyHandler(companyService *service.CompanyService, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		logger:         logger,
	}
}

// Get returns the company profile of the authenticated user. Responds
// 404 until the profile has been saved at least once.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.companyService.Get(r.Context())
	if err != nil {
		respondServiceError(w, h.logger, "get company profile", err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

// Save upserts the company profile. The first call creates it, later
// calls overwrite it in place.
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveCompanyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	company, err := h.companyService.Save(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "save company profile", err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}
