package delivery

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/supchaser/pdf-image-extractor/internal/app"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"github.com/supchaser/pdf-image-extractor/internal/utils/responses"
	"go.uber.org/zap"
)

const (
	Version = "1.0.0"

	filesField      = "files"
	multipartMemory = 32 << 20
	// room for part headers and boundaries on top of the file payloads
	multipartSlack = 1 << 20
)

type ExtractionDelivery struct {
	extractionUsecase app.ExtractionUsecase
}

func CreateExtractionDelivery(extractionUsecase app.ExtractionUsecase) *ExtractionDelivery {
	return &ExtractionDelivery{
		extractionUsecase: extractionUsecase,
	}
}

func (d *ExtractionDelivery) ExtractImages(w http.ResponseWriter, r *http.Request) {
	const funcName = "ExtractionDelivery.ExtractImages"
	logger.Debug("extracting images",
		zap.String("function", funcName),
	)

	download := false
	if raw := r.URL.Query().Get("download"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid download flag")
			return
		}
		download = parsed
	}

	limit := int64(d.extractionUsecase.MaxFiles())*d.extractionUsecase.MaxUploadSize() + multipartSlack
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			responses.DoBadResponseAndLog(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, http.ErrNotMultipart):
			responses.DoBadResponseAndLog(w, http.StatusUnprocessableEntity, "No files provided")
		default:
			responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid multipart form")
		}
		logger.Warn("failed to parse multipart form",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return
	}
	defer r.MultipartForm.RemoveAll()

	uploads, err := readUploads(r.MultipartForm.File[filesField])
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	extraction, err := d.extractionUsecase.ExtractImages(r.Context(), uploads, download)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	if download {
		responses.DoArchiveResponse(w, extraction.Archive, models.ArchiveName, extraction.ImageCount)
	} else {
		count := extraction.ImageCount
		w.Header().Set(models.ImageCountHeader, strconv.Itoa(count))
		responses.DoJSONResponse(w, models.PreviewResponse{
			Message:    fmt.Sprintf("Successfully extracted %d images from %d PDF files", count, len(uploads)),
			ImageCount: &count,
			Filename:   "multiple_files",
			ImageURLs:  extraction.ImageRefs,
		}, http.StatusOK)
	}

	logger.Info("extraction request served",
		zap.String("function", funcName),
		zap.Int("files", len(uploads)),
		zap.Int("image_count", extraction.ImageCount),
		zap.Bool("download", download),
	)
}

func readUploads(headers []*multipart.FileHeader) ([]*models.Upload, error) {
	uploads := make([]*models.Upload, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return nil, fmt.Errorf("read upload %s: %w", fh.Filename, err)
		}
		uploads = append(uploads, &models.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        data,
		})
	}

	return uploads, nil
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (d *ExtractionDelivery) ListPDFImages(w http.ResponseWriter, r *http.Request) {
	const funcName = "ExtractionDelivery.ListPDFImages"
	logger.Debug("listing pdf images",
		zap.String("function", funcName),
	)

	vars := mux.Vars(r)
	pdfID := vars["pdfId"]
	if pdfID == "" {
		responses.DoBadResponseAndLog(w, http.StatusBadRequest, "invalid pdf id")
		return
	}

	records, err := d.extractionUsecase.ListImages(r.Context(), pdfID)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	if len(records) == 0 {
		responses.ResponseErrorAndLog(w, errs.ErrDocumentNotFound, funcName)
		return
	}

	responses.DoJSONResponse(w, records, http.StatusOK)
}

func (d *ExtractionDelivery) GetImage(w http.ResponseWriter, r *http.Request) {
	const funcName = "ExtractionDelivery.GetImage"
	logger.Debug("serving image",
		zap.String("function", funcName),
	)

	vars := mux.Vars(r)
	pdfID := vars["pdfId"]
	name := vars["name"]

	path, err := d.extractionUsecase.ImagePath(r.Context(), pdfID, name)
	if err != nil {
		responses.ResponseErrorAndLog(w, err, funcName)
		return
	}

	http.ServeFile(w, r, path)

	logger.Info("image served successfully",
		zap.String("function", funcName),
		zap.String("pdf_id", pdfID),
		zap.String("image", name),
	)
}

func (d *ExtractionDelivery) Health(w http.ResponseWriter, r *http.Request) {
	responses.DoJSONResponse(w, models.HealthResponse{
		Status:  "healthy",
		Version: Version,
	}, http.StatusOK)
}

func Alive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
