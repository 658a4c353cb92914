package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/service"
)

type CustomerHandler struct {
	customerService *service.CustomerService
	logger          *zap.Logger
}

func NewCustomerHandler(customerService *service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// List returns a paginated customer list, optionally filtered by a
// search term over name, company and document.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	search := r.URL.Query().Get("search")

	result, err := h.customerService.List(r.Context(), page, pageSize, search)
	if err != nil {
		respondServiceError(w, h.logger, "list customers", err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	customer, err := h.customerService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, h.logger, "get customer", err)
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.SaveCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, h.logger, "create customer", err)
		return
	}

	w.Header().Set("Location", "/api/v1/customers/"+customer.ID.String())
	respondJSON(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var req domain.SaveCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	customer, err := h.customerService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, h.logger, "update customer", err)
		return
	}

	respondJSON(w, http.StatusOK, customer)
}

// Delete removes a customer. Quotations that referenced it keep their
// snapshot data but lose the reference.
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	if err := h.customerService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, h.logger, "delete customer", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
