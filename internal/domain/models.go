package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID when none was provided. Keeps the models
// portable between postgres and the sqlite test database.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Company is the issuing company profile shown on quotation headers.
// One active profile per user.
type Company struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;column:user_id"`
	Name         string    `gorm:"type:varchar(200);not null"`
	NIT          string    `gorm:"type:varchar(50);column:nit"`
	Address      string    `gorm:"type:varchar(500)"`
	City         string    `gorm:"type:varchar(100)"`
	Phone        string    `gorm:"type:varchar(50)"`
	Email        string    `gorm:"type:varchar(255)"`
	LogoURL      string    `gorm:"type:varchar(500);column:logo_url"`
	PrimaryColor string    `gorm:"type:varchar(20);not null;default:'#2563eb';column:primary_color"`
}

// Customer is the recipient of a quotation.
type Customer struct {
	BaseModel
	UserID   uuid.UUID `gorm:"type:uuid;not null;index;column:user_id"`
	Name     string    `gorm:"type:varchar(200);not null;index"`
	Company  string    `gorm:"type:varchar(200)"`
	Document string    `gorm:"type:varchar(50)"`
	Email    string    `gorm:"type:varchar(255)"`
	Phone    string    `gorm:"type:varchar(50)"`
	Address  string    `gorm:"type:varchar(500)"`
}

// DefaultIVAPercentage is applied when a product row does not specify one.
const DefaultIVAPercentage = 19.0

// Product is a single row of the products table. It serves two roles:
// a reusable catalog entry when QuotationID is nil, and a quotation line
// item when QuotationID is set. A line item belongs to at most one
// quotation at a time.
type Product struct {
	BaseModel
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index;column:user_id"`
	QuotationID   *uuid.UUID `gorm:"type:uuid;index;column:quotation_id"`
	ItemNumber    int        `gorm:"not null;default:0;column:item_number"`
	Description   string     `gorm:"type:text;not null"`
	ImageURL      string     `gorm:"type:varchar(500);column:image_url"`
	Quantity      float64    `gorm:"type:decimal(10,2);not null;default:1"`
	UnitPrice     float64    `gorm:"type:decimal(15,2);not null;default:0;column:unit_price"`
	Subtotal      float64    `gorm:"type:decimal(15,2);not null;default:0"`
	IVAPercentage float64    `gorm:"type:decimal(5,2);not null;default:19;column:iva_percentage"`
	IVAAmount     float64    `gorm:"type:decimal(15,2);not null;default:0;column:iva_amount"`
	Total         float64    `gorm:"type:decimal(15,2);not null;default:0"`
	Availability  string     `gorm:"type:varchar(200)"`
	Warranty      string     `gorm:"type:varchar(200)"`
}

// IsCatalogEntry reports whether the product is a reusable catalog
// template rather than a line item attached to a quotation.
func (p *Product) IsCatalogEntry() bool {
	return p.QuotationID == nil
}

// QuotationFormat selects which of the three layouts renders a quotation.
// Switching format never changes the underlying data.
type QuotationFormat string

const (
	FormatStandard QuotationFormat = "standard"
	FormatCompact  QuotationFormat = "compact"
	FormatDetailed QuotationFormat = "detailed"
)

// IsValid checks if the QuotationFormat is a valid enum value
func (f QuotationFormat) IsValid() bool {
	switch f {
	case FormatStandard, FormatCompact, FormatDetailed:
		return true
	}
	return false
}

// QuotationStatus represents the lifecycle state of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusRejected QuotationStatus = "rejected"
	QuotationStatusExpired  QuotationStatus = "expired"
)

// IsValid checks if the QuotationStatus is a valid enum value
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted,
		QuotationStatusRejected, QuotationStatusExpired:
		return true
	}
	return false
}

// Quotation is the aggregate root. Its totals are always the sum of its
// items' fields and are recomputed on every save, never edited directly.
type Quotation struct {
	BaseModel
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index;column:user_id"`
	QuotationNumber string          `gorm:"type:varchar(50);not null;index;column:quotation_number"`
	QuotationDate   time.Time       `gorm:"type:date;not null;column:quotation_date"`
	Observations    string          `gorm:"type:text"`
	Format          QuotationFormat `gorm:"type:varchar(20);not null;default:'standard'"`
	CompanyID       *uuid.UUID      `gorm:"type:uuid;column:company_id"`
	Company         *Company        `gorm:"foreignKey:CompanyID"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;column:customer_id"`
	Customer        *Customer       `gorm:"foreignKey:CustomerID"`
	Subtotal        float64         `gorm:"type:decimal(15,2);not null;default:0"`
	TotalIVA        float64         `gorm:"type:decimal(15,2);not null;default:0;column:total_iva"`
	Total           float64         `gorm:"type:decimal(15,2);not null;default:0"`
	Status          QuotationStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	Items           []Product       `gorm:"foreignKey:QuotationID"`
}

// NumberSequence backs generated quotation numbers. One counter per
// user/year; incremented under a row lock.
type NumberSequence struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_number_sequences_user_year;column:user_id"`
	Year         int       `gorm:"not null;uniqueIndex:idx_number_sequences_user_year"`
	LastSequence int       `gorm:"not null;default:0;column:last_sequence"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns a UUID when none was provided.
func (n *NumberSequence) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// Totals holds the aggregate amounts of a line-item collection.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	TotalIVA float64 `json:"totalIva"`
	Total    float64 `json:"total"`
}
