package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/mapper"
	"github.com/cotizaplus/cotiza-api/internal/render"
	"github.com/cotizaplus/cotiza-api/internal/repository"
)

// allowedStatusTransitions defines the quotation lifecycle. Accepted
// and rejected are terminal; expired can be re-sent.
var allowedStatusTransitions = map[domain.QuotationStatus][]domain.QuotationStatus{
	domain.QuotationStatusDraft:   {domain.QuotationStatusSent},
	domain.QuotationStatusSent:    {domain.QuotationStatusAccepted, domain.QuotationStatusRejected, domain.QuotationStatusExpired},
	domain.QuotationStatusExpired: {domain.QuotationStatusSent},
}

// ErrInvalidStatusTransition is returned for lifecycle moves the state
// machine does not allow.
var ErrInvalidStatusTransition = errors.New("invalid status transition")

type QuotationService struct {
	quotationRepo *repository.QuotationRepository
	companyRepo   *repository.CompanyRepository
	customerRepo  *repository.CustomerRepository
	numberSvc     *NumberSequenceService
	validityDays  int
	logger        *zap.Logger
}

func NewQuotationService(
	quotationRepo *repository.QuotationRepository,
	companyRepo *repository.CompanyRepository,
	customerRepo *repository.CustomerRepository,
	numberSvc *NumberSequenceService,
	validityDays int,
	logger *zap.Logger,
) *QuotationService {
	if validityDays <= 0 {
		validityDays = 30
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		companyRepo:   companyRepo,
		customerRepo:  customerRepo,
		numberSvc:     numberSvc,
		validityDays:  validityDays,
		logger:        logger,
	}
}

func (s *QuotationService) Create(ctx context.Context, req *domain.SaveQuotationRequest) (*domain.QuotationDTO, error) {
	userCtx := auth.MustFromContext(ctx)

	number := req.QuotationNumber
	if number == "" {
		var err error
		number, err = s.numberSvc.NextQuotationNumber(ctx)
		if err != nil {
			return nil, err
		}
	}

	date, err := parseQuotationDate(req.QuotationDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	format := req.Format
	if format == "" {
		format = domain.FormatStandard
	}
	status := req.Status
	if status == "" {
		status = domain.QuotationStatusDraft
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	items := NormalizeItems(req.Items)
	totals := ComputeTotals(items)

	quotation := &domain.Quotation{
		UserID:          userCtx.UserID,
		QuotationNumber: number,
		QuotationDate:   date,
		Observations:    req.Observations,
		Format:          format,
		CompanyID:       req.CompanyID,
		CustomerID:      req.CustomerID,
		Subtotal:        totals.Subtotal,
		TotalIVA:        totals.TotalIVA,
		Total:           totals.Total,
		Status:          status,
	}

	if err := s.quotationRepo.SaveWithItems(ctx, quotation, items); err != nil {
		return nil, fmt.Errorf("failed to save quotation: %w", err)
	}

	s.logger.Info("quotation created",
		zap.String("quotation_id", quotation.ID.String()),
		zap.String("number", quotation.QuotationNumber),
		zap.Int("items", len(items)),
	)

	return s.GetByID(ctx, quotation.ID)
}

func (s *QuotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.QuotationDTO, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	dto := mapper.ToQuotationDTO(quotation)
	return &dto, nil
}

// Update overwrites the quotation header and replaces its full item
// set. Totals are recomputed from the submitted items.
func (s *QuotationService) Update(ctx context.Context, id uuid.UUID, req *domain.SaveQuotationRequest) (*domain.QuotationDTO, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	if req.QuotationNumber != "" {
		quotation.QuotationNumber = req.QuotationNumber
	}
	if req.QuotationDate != "" {
		date, err := parseQuotationDate(req.QuotationDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		quotation.QuotationDate = date
	}
	if req.Format != "" {
		quotation.Format = req.Format
	}
	if req.Status != "" && req.Status != quotation.Status {
		if !isTransitionAllowed(quotation.Status, req.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, quotation.Status, req.Status)
		}
		quotation.Status = req.Status
	}

	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	quotation.Observations = req.Observations
	quotation.CompanyID = req.CompanyID
	quotation.CustomerID = req.CustomerID

	items := NormalizeItems(req.Items)
	totals := ComputeTotals(items)
	quotation.Subtotal = totals.Subtotal
	quotation.TotalIVA = totals.TotalIVA
	quotation.Total = totals.Total

	if err := s.quotationRepo.SaveWithItems(ctx, quotation, items); err != nil {
		return nil, fmt.Errorf("failed to save quotation: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *QuotationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.quotationRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get quotation: %w", err)
	}

	if err := s.quotationRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}
	return nil
}

func (s *QuotationService) List(ctx context.Context, page, pageSize int, search string, status domain.QuotationStatus) (*domain.PaginatedResponse, error) {
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 200 {
		pageSize = 200
	}
	if page < 1 {
		page = 1
	}

	quotations, total, err := s.quotationRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}

	dtos := make([]domain.QuotationDTO, len(quotations))
	for i := range quotations {
		dtos[i] = mapper.ToQuotationDTO(&quotations[i])
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &domain.PaginatedResponse{
		Data:       dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// UpdateStatus moves the quotation through its lifecycle.
func (s *QuotationService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus) (*domain.QuotationDTO, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	if status != quotation.Status {
		if !isTransitionAllowed(quotation.Status, status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, quotation.Status, status)
		}
		if err := s.quotationRepo.UpdateStatus(ctx, id, status); err != nil {
			return nil, fmt.Errorf("failed to update status: %w", err)
		}
	}

	return s.GetByID(ctx, id)
}

// ExportPDF renders the quotation to a PDF in its stored visual format,
// or in formatOverride when given. Returns the document bytes and the
// download file name.
func (s *QuotationService) ExportPDF(ctx context.Context, id uuid.UUID, formatOverride domain.QuotationFormat) ([]byte, string, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to get quotation: %w", err)
	}

	company := quotation.Company
	if company == nil {
		// Fall back to the user's current profile when the quotation
		// predates company linking.
		company, err = s.companyRepo.GetCurrent(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, "", ErrCompanyNotConfigured
			}
			return nil, "", fmt.Errorf("failed to get company: %w", err)
		}
	}

	format := quotation.Format
	if formatOverride != "" {
		if !formatOverride.IsValid() {
			return nil, "", fmt.Errorf("%w: unknown format %q", ErrInvalidInput, formatOverride)
		}
		format = formatOverride
	}

	data := render.BuildRenderData(quotation, company, format, s.validityDays)

	pdf, err := render.GeneratePDF(ctx, data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render PDF: %w", err)
	}

	fileName := fmt.Sprintf("Cotizacion-%s.pdf", quotation.QuotationNumber)
	return pdf, fileName, nil
}

// checkReferences verifies that linked company/customer rows exist and
// belong to the current user.
func (s *QuotationService) checkReferences(ctx context.Context, req *domain.SaveQuotationRequest) error {
	if req.CompanyID != nil {
		if _, err := s.companyRepo.GetByID(ctx, *req.CompanyID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: company not found", ErrInvalidInput)
			}
			return fmt.Errorf("failed to check company: %w", err)
		}
	}
	if req.CustomerID != nil {
		if _, err := s.customerRepo.GetByID(ctx, *req.CustomerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: customer not found", ErrInvalidInput)
			}
			return fmt.Errorf("failed to check customer: %w", err)
		}
	}
	return nil
}

func isTransitionAllowed(from, to domain.QuotationStatus) bool {
	for _, allowed := range allowedStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

func parseQuotationDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse("2006-01-02", raw)
}
