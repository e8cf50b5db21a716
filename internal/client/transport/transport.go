package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"github.com/supchaser/pdf-image-extractor/internal/utils/validate"
	"go.uber.org/zap"
)

const (
	DefaultTimeout = 5 * time.Minute

	filesField = "files"
	// cap on error bodies read from the service
	maxErrorBody = 1 << 20
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// HTTPTransport talks to the extraction service.
type HTTPTransport struct {
	baseURL     string
	httpClient  *http.Client
	maxFileSize int64
}

func CreateHTTPTransport(baseURL string, httpClient *http.Client, maxFileSize int64) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if maxFileSize <= 0 {
		maxFileSize = validate.DefaultMaxFileSize
	}

	return &HTTPTransport{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  httpClient,
		maxFileSize: maxFileSize,
	}
}

// Submit sends the batch in one multipart request and decodes the response
// according to the request mode.
func (t *HTTPTransport) Submit(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResult, error) {
	const funcName = "HTTPTransport.Submit"

	var files []models.FileHandle
	if req.Batch != nil {
		files = req.Batch.Files
	}
	if err := validate.ValidateBatch(files, t.maxFileSize); err != nil {
		logger.Warn("batch rejected before submission",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/extract-images?download=%s", t.baseURL, strconv.FormatBool(req.Mode.Download()))
	logger.Debug("submitting batch",
		zap.String("function", funcName),
		zap.String("url", endpoint),
		zap.Strings("files", req.Batch.Names()),
	)

	body, writer := io.Pipe()
	mw := multipart.NewWriter(writer)
	go func() {
		writer.CloseWithError(writeParts(mw, files))
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		body.Close()
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		body.CloseWithError(err)
		logger.Error("extraction request failed",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, &errs.NetworkError{Op: "submit batch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := serviceError(resp)
		logger.Warn("extraction rejected by service",
			zap.String("function", funcName),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}

	headerCount, hasHeader := imageCount(resp.Header)

	var result *models.ExtractionResult
	if req.Mode.Download() {
		result, err = decodeArchive(resp)
	} else {
		result, err = decodeListing(resp)
	}
	if err != nil {
		logger.Error("failed to decode extraction response",
			zap.String("function", funcName),
			zap.Int("status", resp.StatusCode),
			zap.Error(err),
		)
		return nil, err
	}

	if hasHeader {
		result.ImageCount = headerCount
	}

	logger.Info("batch extracted",
		zap.String("function", funcName),
		zap.String("mode", string(req.Mode)),
		zap.Int("image_count", result.ImageCount),
	)

	return result, nil
}

func writeParts(mw *multipart.Writer, files []models.FileHandle) error {
	for _, f := range files {
		if err := writePart(mw, f); err != nil {
			return err
		}
	}

	return mw.Close()
}

func writePart(mw *multipart.Writer, f models.FileHandle) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, filesField, quoteEscaper.Replace(f.Name())))
	header.Set("Content-Type", partContentType(f))

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name(), err)
	}
	defer rc.Close()

	if _, err := io.Copy(part, rc); err != nil {
		return fmt.Errorf("read %s: %w", f.Name(), err)
	}

	return nil
}

// partContentType sends the declared type, except that a file accepted as a
// PDF by its extension is declared as one.
func partContentType(f models.FileHandle) string {
	if validate.ValidateContentType(f.ContentType()) == nil {
		return f.ContentType()
	}
	return models.ContentTypePDF
}

// imageCount reads a non-negative integer count header.
func imageCount(h http.Header) (int, bool) {
	raw := strings.TrimSpace(h.Get(models.ImageCountHeader))
	if raw == "" {
		return 0, false
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

// listingPayload accepts both spellings used by deployed service versions.
type listingPayload struct {
	models.PreviewResponse
	ImageCountCamel *int     `json:"imageCount,omitempty"`
	ImageURLsCamel  []string `json:"imageUrls,omitempty"`
}

func decodeListing(resp *http.Response) (*models.ExtractionResult, error) {
	var payload listingPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &errs.DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	refs := payload.ImageURLs
	if refs == nil {
		refs = payload.ImageURLsCamel
	}
	if refs == nil {
		return nil, &errs.DecodeError{StatusCode: resp.StatusCode, Err: errors.New("missing image_urls")}
	}

	bodyCount := payload.ImageCount
	if bodyCount == nil {
		bodyCount = payload.ImageCountCamel
	}

	count := len(refs)
	if bodyCount != nil && *bodyCount >= 0 {
		count = *bodyCount
	}

	return &models.ExtractionResult{
		Kind:       models.ResultListing,
		ImageCount: count,
		ImageRefs:  refs,
	}, nil
}

func decodeArchive(resp *http.Response) (*models.ExtractionResult, error) {
	archive, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.NetworkError{Op: "read archive", Err: err}
	}

	return &models.ExtractionResult{
		Kind:    models.ResultArchive,
		Archive: archive,
	}, nil
}

// serviceError builds the error for a non-2xx response, taking the message
// from a string "detail" field when the body has one.
func serviceError(resp *http.Response) *errs.ServiceError {
	se := &errs.ServiceError{
		StatusCode: resp.StatusCode,
		Message:    errs.GenericServiceMessage,
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return se
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil && detail != "" {
		se.Message = detail
	}

	return se
}

// ListDocumentImages returns the stored images of one document.
func (t *HTTPTransport) ListDocumentImages(ctx context.Context, pdfID string) ([]models.ImageRecord, error) {
	const funcName = "HTTPTransport.ListDocumentImages"
	endpoint := fmt.Sprintf("%s/pdf/%s/images", t.baseURL, url.PathEscape(pdfID))
	logger.Debug("listing document images",
		zap.String("function", funcName),
		zap.String("url", endpoint),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		logger.Error("list request failed",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, &errs.NetworkError{Op: "list images", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, serviceError(resp)
	}

	var records []models.ImageRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &errs.DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	return records, nil
}

// FetchImage downloads the bytes behind a resolved image location.
func (t *HTTPTransport) FetchImage(ctx context.Context, location string) ([]byte, error) {
	const funcName = "HTTPTransport.FetchImage"
	target := location
	if strings.HasPrefix(location, "/") {
		target = t.origin() + location
	}
	logger.Debug("fetching image",
		zap.String("function", funcName),
		zap.String("url", target),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &errs.FetchError{URL: location, Err: err}
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, &errs.FetchError{URL: location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("image fetch failed",
			zap.String("function", funcName),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &errs.FetchError{URL: location, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.FetchError{URL: location, StatusCode: resp.StatusCode, Err: err}
	}

	return data, nil
}

// origin is scheme and host of the base URL, used for root-relative
// locations.
func (t *HTTPTransport) origin() string {
	u, err := url.Parse(t.baseURL)
	if err != nil || u.Scheme == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
