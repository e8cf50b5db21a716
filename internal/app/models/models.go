package models

import (
	"io"
	"time"
)

const (
	ImageCountHeader = "X-Image-Count"
	ArchiveName      = "extracted_images.zip"
	ContentTypePDF   = "application/pdf"
)

// FileHandle is one member of a batch as seen by the client.
type FileHandle interface {
	Name() string
	Size() int64
	ContentType() string
	Open() (io.ReadCloser, error)
}

// Batch is an ordered, non-empty group of files extracted together.
type Batch struct {
	Files []FileHandle
}

func (b *Batch) Names() []string {
	names := make([]string, 0, len(b.Files))
	for _, f := range b.Files {
		names = append(names, f.Name())
	}
	return names
}

type Mode string

const (
	ModePreview Mode = "preview"
	ModeArchive Mode = "archive"
)

func (m Mode) Download() bool {
	return m == ModeArchive
}

type ExtractionRequest struct {
	Batch *Batch
	Mode  Mode
}

type ResultKind string

const (
	ResultListing ResultKind = "listing"
	ResultArchive ResultKind = "archive"
)

// ExtractionResult holds exactly one of ImageRefs (listing) or Archive,
// selected by Kind. ImageCount is always the authoritative count.
type ExtractionResult struct {
	Kind       ResultKind
	ImageCount int
	ImageRefs  []string
	Archive    []byte
}

// ImageRecord describes one stored image of a document.
type ImageRecord struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	PdfID string `json:"pdf_id"`
}

// PreviewResponse is the JSON body of a successful preview extraction.
type PreviewResponse struct {
	Message    string   `json:"message,omitempty"`
	ImageCount *int     `json:"image_count,omitempty"`
	Filename   string   `json:"filename,omitempty"`
	ImageURLs  []string `json:"image_urls"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Upload is a file received by the extraction service.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// ExtractedImage is one image produced by the PDF engine.
type ExtractedImage struct {
	Name      string
	Page      int
	Index     int
	Extension string
	Data      []byte
}

// Document is one uploaded PDF after extraction.
type Document struct {
	ID        string
	Filename  string
	Position  int
	Images    []*ExtractedImage
	CreatedAt time.Time
}

// Extraction is the outcome of one batch on the service side.
type Extraction struct {
	ImageCount int
	Documents  []*Document
	ImageRefs  []string
	Archive    []byte
}
