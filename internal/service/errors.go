package service

import "errors"

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCompanyNotConfigured is returned when a quotation render needs a
	// company profile and the user has not saved one yet
	ErrCompanyNotConfigured = errors.New("company profile not configured")

	// ErrEmptyImport is returned when an import file contains no data rows
	ErrEmptyImport = errors.New("import file contains no data rows")

	// ErrImportRejected is returned when every data row of an import file
	// fails validation; nothing is persisted in that case
	ErrImportRejected = errors.New("no valid rows in import file")

	// ErrUnsupportedFileType is returned when an uploaded file's type is
	// not accepted for the operation
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge is returned when an upload exceeds the size limit
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
)
