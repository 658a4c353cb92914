package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/cotizaplus/cotiza-api/internal/auth"
	"github.com/cotizaplus/cotiza-api/internal/domain"
	"github.com/cotizaplus/cotiza-api/internal/repository"
)

// Bulk catalog import from .csv and .xlsx files. Files are
// semicolon-delimited CSVs or single-sheet workbooks with the Spanish
// column headers the downloadable template uses.

// Template column keys, in file order.
var importColumns = []string{
	"numero_item",
	"descripcion",
	"precio_unitario",
	"iva_porcentaje",
	"disponibilidad",
	"garantia",
	"url_imagen",
}

// sampleRow is one row of the downloadable template.
type sampleRow struct {
	description  string
	unitPrice    float64
	iva          float64
	availability string
	warranty     string
}

var templateSamples = []sampleRow{
	{"Portátil Dell Inspiron 15", 2500000, 19, "Entrega inmediata", "12 meses"},
	{"Mouse inalámbrico Logitech", 350000, 19, "Disponible", "6 meses"},
	{"Monitor Samsung 24 pulgadas", 800000, 19, "Consultar", "24 meses"},
	{"Teclado mecánico Corsair", 450000, 19, "Disponible", "12 meses"},
	{"Impresora HP LaserJet", 1200000, 19, "2-3 días hábiles", "12 meses"},
}

// ImportService parses uploaded product files and inserts the valid
// rows as catalog entries.
type ImportService struct {
	productRepo *repository.ProductRepository
	logger      *zap.Logger
}

func NewImportService(productRepo *repository.ProductRepository, logger *zap.Logger) *ImportService {
	return &ImportService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Import parses the uploaded file and persists every valid row. Rows
// that fail validation are reported by file line number and skipped;
// valid rows are accepted regardless. A file with no valid rows at all
// fails with ErrImportRejected and persists nothing.
func (s *ImportService) Import(ctx context.Context, file io.Reader, fileName string) (*domain.ImportResultDTO, error) {
	userCtx := auth.MustFromContext(ctx)

	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCSVRows(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseExcelRows(file)
	default:
		return nil, ErrUnsupportedFileType
	}
	if err != nil {
		return nil, err
	}
	if len(dataRows) == 0 {
		return nil, ErrEmptyImport
	}

	columnKeys := mapImportHeaders(headers)

	result := &domain.ImportResultDTO{
		TotalRows: len(dataRows),
		Errors:    []string{},
	}

	products := make([]domain.Product, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		// 1-indexed file line, +1 for the header row
		rowNum := rowIdx + 2

		rowData := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		product, rowErr := buildImportedProduct(userCtx.UserID, rowData)
		if rowErr != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Fila %d: %s", rowNum, rowErr.Error()))
			continue
		}
		products = append(products, *product)
	}

	// A file where every row is invalid is rejected as a whole.
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrImportRejected, strings.Join(result.Errors, "; "))
	}

	if err := s.productRepo.CreateBatch(ctx, products); err != nil {
		return nil, fmt.Errorf("failed to insert imported products: %w", err)
	}

	result.Accepted = len(products)

	s.logger.Info("catalog import finished",
		zap.String("file", fileName),
		zap.Int("total_rows", result.TotalRows),
		zap.Int("accepted", result.Accepted),
		zap.Int("rejected", len(result.Errors)),
	)

	return result, nil
}

// parseCSVRows reads a semicolon-delimited CSV and returns headers plus
// data rows.
func parseCSVRows(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, ErrEmptyImport
	}

	return allRows[0], allRows[1:], nil
}

// parseExcelRows reads the first sheet of an xlsx workbook and returns
// headers plus data rows.
func parseExcelRows(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, ErrEmptyImport
	}

	return rows[0], rows[1:], nil
}

// mapImportHeaders matches uploaded column headers to template keys.
// Unrecognized columns map to "" and are ignored.
func mapImportHeaders(headers []string) []string {
	known := make(map[string]bool, len(importColumns))
	for _, c := range importColumns {
		known[c] = true
	}

	mapped := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		if known[norm] {
			mapped[i] = norm
		}
	}
	return mapped
}

// buildImportedProduct validates one parsed row and converts it into a
// catalog entry.
func buildImportedProduct(userID uuid.UUID, data map[string]string) (*domain.Product, error) {
	description := data["descripcion"]
	if description == "" {
		return nil, fmt.Errorf("la descripción es obligatoria")
	}

	price, err := parseImportNumber(data["precio_unitario"])
	if err != nil || price <= 0 {
		return nil, fmt.Errorf("el precio unitario debe ser un número mayor que cero")
	}

	iva := domain.DefaultIVAPercentage
	if raw := data["iva_porcentaje"]; raw != "" {
		iva, err = parseImportNumber(raw)
		if err != nil || iva < 0 || iva > 100 {
			return nil, fmt.Errorf("el porcentaje de IVA debe estar entre 0 y 100")
		}
	}

	availability := data["disponibilidad"]
	if availability == "" {
		availability = DefaultAvailability
	}
	warranty := data["garantia"]
	if warranty == "" {
		warranty = DefaultWarranty
	}

	product := &domain.Product{
		UserID:        userID,
		Description:   description,
		Quantity:      1,
		UnitPrice:     price,
		IVAPercentage: iva,
		Availability:  availability,
		Warranty:      warranty,
		ImageURL:      data["url_imagen"],
	}
	ComputeLineAmounts(product)
	return product, nil
}

// parseImportNumber accepts both dot and comma decimal separators.
func parseImportNumber(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.ReplaceAll(raw, ",", ".")
	return strconv.ParseFloat(raw, 64)
}

// GenerateCSVTemplate builds the downloadable semicolon-delimited CSV
// template with sample rows.
func (s *ImportService) GenerateCSVTemplate() ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	writer.Comma = ';'

	if err := writer.Write(importColumns); err != nil {
		return nil, fmt.Errorf("failed to write template header: %w", err)
	}

	for i, sample := range templateSamples {
		record := []string{
			strconv.Itoa(i + 1),
			sample.description,
			strconv.FormatFloat(sample.unitPrice, 'f', -1, 64),
			strconv.FormatFloat(sample.iva, 'f', -1, 64),
			sample.availability,
			sample.warranty,
			"",
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write template row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush template: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateExcelTemplate builds the downloadable xlsx template with a
// styled header row and the same sample rows as the CSV template.
func (s *ImportService) GenerateExcelTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Productos"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2563EB"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, col := range importColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col)
	}
	firstCell, _ := excelize.CoordinatesToCellName(1, 1)
	lastCell, _ := excelize.CoordinatesToCellName(len(importColumns), 1)
	f.SetCellStyle(sheetName, firstCell, lastCell, headerStyle)

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 35)
	f.SetColWidth(sheetName, "C", "D", 16)
	f.SetColWidth(sheetName, "E", "F", 20)
	f.SetColWidth(sheetName, "G", "G", 30)

	for i, sample := range templateSamples {
		row := i + 2
		values := []interface{}{
			i + 1,
			sample.description,
			sample.unitPrice,
			sample.iva,
			sample.availability,
			sample.warranty,
			"",
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	// Freeze header row
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write excel template: %w", err)
	}
	return buf.Bytes(), nil
}
