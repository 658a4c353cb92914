package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API requests and responses

type CompanyDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	NIT          string    `json:"nit,omitempty"`
	Address      string    `json:"address,omitempty"`
	City         string    `json:"city,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	PrimaryColor string    `json:"primaryColor"`
	CreatedAt    string    `json:"createdAt"` // ISO 8601
	UpdatedAt    string    `json:"updatedAt"` // ISO 8601
}

// SaveCompanyRequest upserts the company profile for the current user.
type SaveCompanyRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	NIT          string `json:"nit" validate:"max=50"`
	Address      string `json:"address" validate:"max=500"`
	City         string `json:"city" validate:"max=100"`
	Phone        string `json:"phone" validate:"max=50"`
	Email        string `json:"email" validate:"omitempty,email"`
	LogoURL      string `json:"logoUrl" validate:"omitempty,url,max=500"`
	PrimaryColor string `json:"primaryColor" validate:"omitempty,hexcolor"`
}

type CustomerDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company,omitempty"`
	Document  string    `json:"document,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
	UpdatedAt string    `json:"updatedAt"` // ISO 8601
}

type SaveCustomerRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Company  string `json:"company" validate:"max=200"`
	Document string `json:"document" validate:"max=50"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"max=50"`
	Address  string `json:"address" validate:"max=500"`
}

type CatalogProductDTO struct {
	ID            uuid.UUID `json:"id"`
	Description   string    `json:"description"`
	UnitPrice     float64   `json:"unitPrice"`
	IVAPercentage float64   `json:"ivaPercentage"`
	Availability  string    `json:"availability,omitempty"`
	Warranty      string    `json:"warranty,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedAt     string    `json:"createdAt"` // ISO 8601
	UpdatedAt     string    `json:"updatedAt"` // ISO 8601
}

type SaveCatalogProductRequest struct {
	Description   string   `json:"description" validate:"required"`
	UnitPrice     float64  `json:"unitPrice" validate:"required,gt=0"`
	IVAPercentage *float64 `json:"ivaPercentage" validate:"omitempty,gte=0,lte=100"`
	Availability  string   `json:"availability" validate:"max=200"`
	Warranty      string   `json:"warranty" validate:"max=200"`
	ImageURL      string   `json:"imageUrl" validate:"omitempty,url,max=500"`
}

// LineItemDTO carries a single quotation row with its derived fields.
// Subtotal, ivaAmount and total are always server-computed.
type LineItemDTO struct {
	ID            uuid.UUID `json:"id"`
	ItemNumber    int       `json:"itemNumber"`
	Description   string    `json:"description"`
	Quantity      float64   `json:"quantity"`
	UnitPrice     float64   `json:"unitPrice"`
	Subtotal      float64   `json:"subtotal"`
	IVAPercentage float64   `json:"ivaPercentage"`
	IVAAmount     float64   `json:"ivaAmount"`
	Total         float64   `json:"total"`
	Availability  string    `json:"availability,omitempty"`
	Warranty      string    `json:"warranty,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty"`
}

// LineItemInput is a line item as submitted by the client. Derived
// fields are ignored on input and recomputed before persistence. The
// ID is accepted for editor round-trips but never persisted; stored
// items always get server-assigned identities.
type LineItemInput struct {
	ID            *uuid.UUID `json:"id"`
	Description   string     `json:"description"`
	Quantity      float64    `json:"quantity" validate:"gte=0"`
	UnitPrice     float64    `json:"unitPrice" validate:"gte=0"`
	IVAPercentage *float64   `json:"ivaPercentage" validate:"omitempty,gte=0,lte=100"`
	Availability  string     `json:"availability"`
	Warranty      string     `json:"warranty"`
	ImageURL      string     `json:"imageUrl" validate:"omitempty,url"`
}

type QuotationDTO struct {
	ID              uuid.UUID       `json:"id"`
	QuotationNumber string          `json:"quotationNumber"`
	QuotationDate   string          `json:"quotationDate"` // YYYY-MM-DD
	Observations    string          `json:"observations,omitempty"`
	Format          QuotationFormat `json:"format"`
	CompanyID       *uuid.UUID      `json:"companyId,omitempty"`
	CustomerID      *uuid.UUID      `json:"customerId,omitempty"`
	CustomerName    string          `json:"customerName,omitempty"`
	Subtotal        float64         `json:"subtotal"`
	TotalIVA        float64         `json:"totalIva"`
	Total           float64         `json:"total"`
	Status          QuotationStatus `json:"status"`
	Items           []LineItemDTO   `json:"items,omitempty"`
	CreatedAt       string          `json:"createdAt"` // ISO 8601
	UpdatedAt       string          `json:"updatedAt"` // ISO 8601
}

// SaveQuotationRequest creates or replaces a quotation together with
// its full line-item set (replace-all semantics).
type SaveQuotationRequest struct {
	QuotationNumber string          `json:"quotationNumber" validate:"max=50"`
	QuotationDate   string          `json:"quotationDate" validate:"omitempty,datetime=2006-01-02"`
	Observations    string          `json:"observations"`
	Format          QuotationFormat `json:"format" validate:"omitempty,oneof=standard compact detailed"`
	CompanyID       *uuid.UUID      `json:"companyId"`
	CustomerID      *uuid.UUID      `json:"customerId"`
	Status          QuotationStatus `json:"status" validate:"omitempty,oneof=draft sent accepted rejected expired"`
	Items           []LineItemInput `json:"items" validate:"dive"`
}

// ImportResultDTO reports the outcome of a bulk catalog import.
type ImportResultDTO struct {
	TotalRows int      `json:"totalRows"`
	Accepted  int      `json:"accepted"`
	Errors    []string `json:"errors"`
}

// FileUploadResponse is returned after a successful image upload.
type FileUploadResponse struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// PaginatedResponse wraps list results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// FormatDate renders a time as the wire date format used by quotations.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
