package app

import (
	"context"
	"io"

	"github.com/supchaser/pdf-image-extractor/internal/app/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

type PDFEngine interface {
	ExtractImages(ctx context.Context, name string, rs io.ReadSeeker) ([]*models.ExtractedImage, error)
}

type ImageRepository interface {
	SaveDocument(ctx context.Context, doc *models.Document) ([]models.ImageRecord, error)
	ListImages(ctx context.Context, pdfID string) ([]models.ImageRecord, error)
	ImagePath(ctx context.Context, pdfID, name string) (string, error)
	DeleteDocument(ctx context.Context, pdfID string) error
}

type ExtractionUsecase interface {
	ExtractImages(ctx context.Context, uploads []*models.Upload, download bool) (*models.Extraction, error)
	ListImages(ctx context.Context, pdfID string) ([]models.ImageRecord, error)
	ImagePath(ctx context.Context, pdfID, name string) (string, error)
	MaxUploadSize() int64
	MaxFiles() int
}

type Transport interface {
	Submit(ctx context.Context, req models.ExtractionRequest) (*models.ExtractionResult, error)
	ListDocumentImages(ctx context.Context, pdfID string) ([]models.ImageRecord, error)
	FetchImage(ctx context.Context, url string) ([]byte, error)
}

type ArchiveSaver interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

type Notifier interface {
	Notify(level models.NoticeLevel, message string)
}
