package validate

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
)

const (
	MB                 = int64(1024 * 1024)
	DefaultMaxFileSize = 50 * MB
	DefaultMaxFiles    = 10
)

var allowedExtensions = map[string]bool{
	".pdf": true,
}

// generic types some uploaders send when they do not know better
var genericContentTypes = map[string]bool{
	"":                         true,
	"application/octet-stream": true,
}

func ValidateFileCount(count, maxFiles int) error {
	if count == 0 {
		return errs.ErrEmptyBatch
	}
	if maxFiles > 0 && count > maxFiles {
		return fmt.Errorf("%w: maximum %d files per request", errs.ErrTooManyFiles, maxFiles)
	}

	return nil
}

func ValidateFileExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if _, ok := allowedExtensions[ext]; !ok {
		return errs.ErrInvalidFileType
	}

	return nil
}

func ValidateContentType(contentType string) error {
	mediaType := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if mediaType != models.ContentTypePDF {
		return errs.ErrInvalidFileType
	}

	return nil
}

// ValidatePDFContent sniffs the leading bytes of an upload.
func ValidatePDFContent(data []byte) error {
	if !mimetype.Detect(data).Is(models.ContentTypePDF) {
		return errs.ErrInvalidPDF
	}

	return nil
}

// IsDeclaredPDF reports whether a client side file declares itself a PDF. A
// generic or empty type falls back to the file extension.
func IsDeclaredPDF(name, contentType string) bool {
	if genericContentTypes[strings.ToLower(contentType)] {
		return ValidateFileExtension(name) == nil
	}

	return ValidateContentType(contentType) == nil
}

// ValidateBatch checks a batch before anything is sent. Every offending file
// is named in the returned error.
func ValidateBatch(files []models.FileHandle, maxSize int64) error {
	if len(files) == 0 {
		return &errs.ValidationError{
			Message: "No files provided",
			Err:     errs.ErrEmptyBatch,
		}
	}

	var oversized, wrongType []string
	for _, f := range files {
		if f.Size() > maxSize {
			oversized = append(oversized, f.Name())
		}
		if !IsDeclaredPDF(f.Name(), f.ContentType()) {
			wrongType = append(wrongType, f.Name())
		}
	}

	if len(oversized) > 0 {
		return &errs.ValidationError{
			Message: fmt.Sprintf("Some files exceed the %s limit: %s", FormatSize(maxSize), strings.Join(oversized, ", ")),
			Files:   oversized,
			Err:     errs.ErrFileTooLarge,
		}
	}

	if len(wrongType) > 0 {
		return &errs.ValidationError{
			Message: fmt.Sprintf("Only PDF files are allowed: %s", strings.Join(wrongType, ", ")),
			Files:   wrongType,
			Err:     errs.ErrInvalidFileType,
		}
	}

	return nil
}

func FormatSize(size int64) string {
	if size%MB == 0 {
		return fmt.Sprintf("%dMB", size/MB)
	}
	return fmt.Sprintf("%.1fMB", float64(size)/float64(MB))
}
