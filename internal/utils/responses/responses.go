package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"go.uber.org/zap"
)

// InternalErrorMessage is sent for unexpected failures; the cause is only logged.
const InternalErrorMessage = "Error processing PDF"

func DoBadResponseAndLog(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	jsonResponse, err := json.Marshal(models.ErrorResponse{Detail: message})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	_, err = w.Write(jsonResponse)
	if err != nil {
		logger.Error("failed to write response",
			zap.String("function", "DoBadResponseAndLog"),
			zap.Error(err),
		)
		return
	}

	logger.Warn("Bad response",
		zap.Int("status", statusCode),
		zap.String("message", message),
	)
}

func DoJSONResponse(w http.ResponseWriter, responseData interface{}, successStatusCode int) {
	body, err := json.Marshal(responseData)
	if err != nil {
		DoBadResponseAndLog(w, http.StatusInternalServerError, "internal error")
		logger.Error("failed to marshal response",
			zap.String("function", "DoJSONResponse"),
			zap.Error(err),
		)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(successStatusCode)

	if _, err := w.Write(body); err != nil {
		logger.Error("failed to write response",
			zap.String("function", "DoJSONResponse"),
			zap.Error(err),
		)
	}
}

// DoArchiveResponse writes a zip archive as an attachment.
func DoArchiveResponse(w http.ResponseWriter, archive []byte, filename string, imageCount int) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.Header().Set(models.ImageCountHeader, strconv.Itoa(imageCount))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(archive); err != nil {
		logger.Error("failed to write archive",
			zap.String("function", "DoArchiveResponse"),
			zap.Error(err),
		)
	}
}

// detail prefers the message of a ValidationError over the fallback text.
func detail(err error, fallback string) string {
	var ve *errs.ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	return fallback
}

func ResponseErrorAndLog(w http.ResponseWriter, err error, funcName string) {
	switch {
	case errors.Is(err, errs.ErrEmptyBatch):
		DoBadResponseAndLog(w, http.StatusUnprocessableEntity, detail(err, "No files provided"))
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrTooManyFiles):
		DoBadResponseAndLog(w, http.StatusBadRequest, detail(err, err.Error()))
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrFileTooLarge):
		DoBadResponseAndLog(w, http.StatusRequestEntityTooLarge, detail(err, err.Error()))
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrInvalidFileType):
		DoBadResponseAndLog(w, http.StatusBadRequest, detail(err, "Only PDF files are allowed"))
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrInvalidPDF):
		DoBadResponseAndLog(w, http.StatusBadRequest, detail(err, err.Error()))
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrDocumentNotFound):
		DoBadResponseAndLog(w, http.StatusNotFound, "PDF ID not found or no images available")
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	case errors.Is(err, errs.ErrImageNotFound):
		DoBadResponseAndLog(w, http.StatusNotFound, "Image not found or has been cleaned up")
		logger.Warn(funcName,
			zap.String("error", err.Error()),
		)

	default:
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			DoBadResponseAndLog(w, http.StatusBadRequest, ve.Message)
			logger.Warn(funcName,
				zap.String("error", err.Error()),
			)
			return
		}
		DoBadResponseAndLog(w, http.StatusInternalServerError, InternalErrorMessage)
		logger.Error(funcName,
			zap.String("error", err.Error()),
		)
	}
}
