package mapper

import (
	"time"

	"github.com/cotizaplus/cotiza-api/internal/domain"
)

// Mappers between GORM models and DTOs

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ToCompanyDTO(company *domain.Company) domain.CompanyDTO {
	return domain.CompanyDTO{
		ID:           company.ID,
		Name:         company.Name,
		NIT:          company.NIT,
		Address:      company.Address,
		City:         company.City,
		Phone:        company.Phone,
		Email:        company.Email,
		LogoURL:      company.LogoURL,
		PrimaryColor: company.PrimaryColor,
		CreatedAt:    formatTimestamp(company.CreatedAt),
		UpdatedAt:    formatTimestamp(company.UpdatedAt),
	}
}

func ToCustomerDTO(customer *domain.Customer) domain.CustomerDTO {
	return domain.CustomerDTO{
		ID:        customer.ID,
		Name:      customer.Name,
		Company:   customer.Company,
		Document:  customer.Document,
		Email:     customer.Email,
		Phone:     customer.Phone,
		Address:   customer.Address,
		CreatedAt: formatTimestamp(customer.CreatedAt),
		UpdatedAt: formatTimestamp(customer.UpdatedAt),
	}
}

func ToCatalogProductDTO(product *domain.Product) domain.CatalogProductDTO {
	return domain.CatalogProductDTO{
		ID:            product.ID,
		Description:   product.Description,
		UnitPrice:     product.UnitPrice,
		IVAPercentage: product.IVAPercentage,
		Availability:  product.Availability,
		Warranty:      product.Warranty,
		ImageURL:      product.ImageURL,
		CreatedAt:     formatTimestamp(product.CreatedAt),
		UpdatedAt:     formatTimestamp(product.UpdatedAt),
	}
}

func ToLineItemDTO(item *domain.Product) domain.LineItemDTO {
	return domain.LineItemDTO{
		ID:            item.ID,
		ItemNumber:    item.ItemNumber,
		Description:   item.Description,
		Quantity:      item.Quantity,
		UnitPrice:     item.UnitPrice,
		Subtotal:      item.Subtotal,
		IVAPercentage: item.IVAPercentage,
		IVAAmount:     item.IVAAmount,
		Total:         item.Total,
		Availability:  item.Availability,
		Warranty:      item.Warranty,
		ImageURL:      item.ImageURL,
	}
}

func ToQuotationDTO(quotation *domain.Quotation) domain.QuotationDTO {
	dto := domain.QuotationDTO{
		ID:              quotation.ID,
		QuotationNumber: quotation.QuotationNumber,
		QuotationDate:   domain.FormatDate(quotation.QuotationDate),
		Observations:    quotation.Observations,
		Format:          quotation.Format,
		CompanyID:       quotation.CompanyID,
		CustomerID:      quotation.CustomerID,
		Subtotal:        quotation.Subtotal,
		TotalIVA:        quotation.TotalIVA,
		Total:           quotation.Total,
		Status:          quotation.Status,
		CreatedAt:       formatTimestamp(quotation.CreatedAt),
		UpdatedAt:       formatTimestamp(quotation.UpdatedAt),
	}

	if quotation.Customer != nil {
		dto.CustomerName = quotation.Customer.Name
	}

	if len(quotation.Items) > 0 {
		dto.Items = make([]domain.LineItemDTO, len(quotation.Items))
		for i := range quotation.Items {
			dto.Items[i] = ToLineItemDTO(&quotation.Items[i])
		}
	}

	return dto
}
