package usecase

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/supchaser/pdf-image-extractor/internal/app"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"github.com/supchaser/pdf-image-extractor/internal/utils/validate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

type Options struct {
	MaxUploadSize            int64
	MaxFiles                 int
	MaxConcurrentExtractions int
}

type ExtractionUsecase struct {
	engine          app.PDFEngine
	imageRepository app.ImageRepository
	extractions     *semaphore.Weighted
	maxUploadSize   int64
	maxFiles        int
	newID           func() string
	now             func() time.Time
}

func CreateExtractionUsecase(engine app.PDFEngine, imageRepository app.ImageRepository, opts Options) *ExtractionUsecase {
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = validate.DefaultMaxFileSize
	}
	if opts.MaxFiles <= 0 {
		opts.MaxFiles = validate.DefaultMaxFiles
	}
	if opts.MaxConcurrentExtractions <= 0 {
		opts.MaxConcurrentExtractions = 10
	}

	return &ExtractionUsecase{
		engine:          engine,
		imageRepository: imageRepository,
		extractions:     semaphore.NewWeighted(int64(opts.MaxConcurrentExtractions)),
		maxUploadSize:   opts.MaxUploadSize,
		maxFiles:        opts.MaxFiles,
		newID:           uuid.NewString,
		now:             time.Now,
	}
}

func (u *ExtractionUsecase) MaxUploadSize() int64 {
	return u.maxUploadSize
}

func (u *ExtractionUsecase) MaxFiles() int {
	return u.maxFiles
}

func (u *ExtractionUsecase) ExtractImages(ctx context.Context, uploads []*models.Upload, download bool) (*models.Extraction, error) {
	const funcName = "ExtractionUsecase.ExtractImages"
	logger.Debug("extracting images from batch",
		zap.String("function", funcName),
		zap.Int("files", len(uploads)),
		zap.Bool("download", download),
	)

	if err := u.validateUploads(uploads); err != nil {
		logger.Warn("batch rejected",
			zap.String("function", funcName),
			zap.Error(err),
		)
		return nil, err
	}

	docs := make([]*models.Document, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	for i, upload := range uploads {
		g.Go(func() error {
			if err := u.extractions.Acquire(gctx, 1); err != nil {
				return err
			}
			defer u.extractions.Release(1)

			images, err := u.engine.ExtractImages(gctx, upload.Filename, bytes.NewReader(upload.Data))
			if err != nil {
				return err
			}

			doc := &models.Document{
				ID:        u.newID(),
				Filename:  upload.Filename,
				Position:  i + 1,
				Images:    images,
				CreatedAt: u.now(),
			}
			if _, err := u.imageRepository.SaveDocument(gctx, doc); err != nil {
				return fmt.Errorf("save images of %s: %w", upload.Filename, err)
			}

			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("failed to extract images",
			zap.String("function", funcName),
			zap.Error(err),
		)
		u.discard(ctx, docs)
		return nil, err
	}

	extraction := &models.Extraction{
		Documents: docs,
		ImageRefs: make([]string, 0),
	}
	for _, doc := range docs {
		for _, img := range doc.Images {
			extraction.ImageRefs = append(extraction.ImageRefs, doc.ID+"/"+img.Name)
		}
	}
	extraction.ImageCount = len(extraction.ImageRefs)

	if download {
		archive, err := buildArchive(docs)
		if err != nil {
			logger.Error("failed to build archive",
				zap.String("function", funcName),
				zap.Error(err),
			)
			u.discard(ctx, docs)
			return nil, err
		}
		extraction.Archive = archive
	}

	logger.Info("batch extracted successfully",
		zap.String("function", funcName),
		zap.Int("files", len(docs)),
		zap.Int("image_count", extraction.ImageCount),
		zap.Bool("download", download),
	)

	return extraction, nil
}

// discard removes the documents of a failed batch that were already saved.
func (u *ExtractionUsecase) discard(ctx context.Context, docs []*models.Document) {
	const funcName = "ExtractionUsecase.discard"
	ctx = context.WithoutCancel(ctx)

	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if err := u.imageRepository.DeleteDocument(ctx, doc.ID); err != nil {
			logger.Warn("failed to discard document of failed batch",
				zap.String("function", funcName),
				zap.String("pdf_id", doc.ID),
				zap.Error(err),
			)
		}
	}
}

func (u *ExtractionUsecase) validateUploads(uploads []*models.Upload) error {
	if err := validate.ValidateFileCount(len(uploads), u.maxFiles); err != nil {
		return err
	}

	for _, upload := range uploads {
		if err := validate.ValidateFileExtension(upload.Filename); err != nil {
			return &errs.ValidationError{
				Message: fmt.Sprintf("Only PDF files are allowed. '%s' is not a PDF file.", upload.Filename),
				Files:   []string{upload.Filename},
				Err:     err,
			}
		}
		if err := validate.ValidateContentType(upload.ContentType); err != nil {
			return &errs.ValidationError{
				Message: fmt.Sprintf("Invalid file type for '%s'. Only PDF files are allowed", upload.Filename),
				Files:   []string{upload.Filename},
				Err:     err,
			}
		}
		if upload.Size > u.maxUploadSize {
			return &errs.ValidationError{
				Message: fmt.Sprintf("File size exceeds maximum allowed size of %s: '%s'", validate.FormatSize(u.maxUploadSize), upload.Filename),
				Files:   []string{upload.Filename},
				Err:     errs.ErrFileTooLarge,
			}
		}
		if err := validate.ValidatePDFContent(upload.Data); err != nil {
			return &errs.ValidationError{
				Message: fmt.Sprintf("'%s' is not a valid PDF document", upload.Filename),
				Files:   []string{upload.Filename},
				Err:     err,
			}
		}
	}

	return nil
}

// buildArchive packs every document's images under pdf_{position}/ so names
// from different documents cannot collide.
func buildArchive(docs []*models.Document) ([]byte, error) {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, doc := range docs {
		for _, img := range doc.Images {
			name := fmt.Sprintf("pdf_%d/%s", doc.Position, img.Name)
			fileWriter, err := zipWriter.CreateHeader(&zip.FileHeader{
				Name:     name,
				Method:   zip.Deflate,
				Modified: doc.CreatedAt,
			})
			if err != nil {
				return nil, fmt.Errorf("create %s in archive: %w", name, err)
			}
			if _, err := fileWriter.Write(img.Data); err != nil {
				return nil, fmt.Errorf("write %s to archive: %w", name, err)
			}
		}
	}

	if err := zipWriter.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	return buf.Bytes(), nil
}

func (u *ExtractionUsecase) ListImages(ctx context.Context, pdfID string) ([]models.ImageRecord, error) {
	const funcName = "ExtractionUsecase.ListImages"
	logger.Debug("listing document images",
		zap.String("function", funcName),
		zap.String("pdf_id", pdfID),
	)

	records, err := u.imageRepository.ListImages(ctx, pdfID)
	if err != nil {
		logger.Error("failed to list images",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
			zap.Error(err),
		)
		return nil, err
	}

	return records, nil
}

func (u *ExtractionUsecase) ImagePath(ctx context.Context, pdfID, name string) (string, error) {
	const funcName = "ExtractionUsecase.ImagePath"
	logger.Debug("resolving image path",
		zap.String("function", funcName),
		zap.String("pdf_id", pdfID),
		zap.String("image", name),
	)

	path, err := u.imageRepository.ImagePath(ctx, pdfID, name)
	if err != nil {
		logger.Error("failed to resolve image",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
			zap.String("image", name),
			zap.Error(err),
		)
		return "", err
	}

	return path, nil
}
