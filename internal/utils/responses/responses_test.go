package responses

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func TestResponseErrorAndLog(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "EmptyBatch",
			err:            errs.ErrEmptyBatch,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"detail":"No files provided"}`,
		},
		{
			name:           "TooManyFiles",
			err:            fmt.Errorf("%w: maximum 10 files per request", errs.ErrTooManyFiles),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"detail":"too many files in request: maximum 10 files per request"}`,
		},
		{
			name: "TooLargeKeepsValidationMessage",
			err: &errs.ValidationError{
				Message: "File size exceeds maximum allowed size of 50MB: 'a.pdf'",
				Err:     errs.ErrFileTooLarge,
			},
			expectedStatus: http.StatusRequestEntityTooLarge,
			expectedBody:   `{"detail":"File size exceeds maximum allowed size of 50MB: 'a.pdf'"}`,
		},
		{
			name:           "InvalidFileType",
			err:            errs.ErrInvalidFileType,
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"detail":"Only PDF files are allowed"}`,
		},
		{
			name:           "InvalidPDF",
			err:            fmt.Errorf("%w: a.pdf: xref table missing", errs.ErrInvalidPDF),
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"detail":"invalid or corrupted PDF file: a.pdf: xref table missing"}`,
		},
		{
			name:           "DocumentNotFound",
			err:            errs.ErrDocumentNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"detail":"PDF ID not found or no images available"}`,
		},
		{
			name:           "ImageNotFound",
			err:            errs.ErrImageNotFound,
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"detail":"Image not found or has been cleaned up"}`,
		},
		{
			name:           "OtherValidationError",
			err:            &errs.ValidationError{Message: "bad upload", Err: errors.New("odd")},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"detail":"bad upload"}`,
		},
		{
			name:           "InternalHidesCause",
			err:            fmt.Errorf("save images of a.pdf: %w", errors.New("open /var/lib/pdf/images/x: disk full")),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"detail":"Error processing PDF"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			ResponseErrorAndLog(w, tt.err, "TestResponseErrorAndLog")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestDoArchiveResponse(t *testing.T) {
	w := httptest.NewRecorder()

	DoArchiveResponse(w, []byte("PK\x03\x04"), models.ArchiveName, 12)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=extracted_images.zip", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "12", w.Header().Get(models.ImageCountHeader))
	assert.Equal(t, "4", w.Header().Get("Content-Length"))
	assert.Equal(t, []byte("PK\x03\x04"), w.Body.Bytes())
}

func TestDoJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()

	DoJSONResponse(w, models.HealthResponse{Status: "healthy", Version: "1.0.0"}, http.StatusOK)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","version":"1.0.0"}`, w.Body.String())
}
