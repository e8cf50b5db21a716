package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const DefaultImageURLPrefix = "/api/v1/images"

var imagesBucket = []byte("images")

// storedImage is the index entry kept per extracted image.
type storedImage struct {
	ID         string    `json:"id"`
	PdfID      string    `json:"pdf_id"`
	SourceFile string    `json:"source_file"`
	Page       int       `json:"page"`
	Index      int       `json:"index"`
	Size       int       `json:"size"`
	CreatedAt  time.Time `json:"created_at"`
}

// ImageRepository keeps image bytes on disk under {root}/images/{pdfID}/ and
// an ordered index per document in bbolt.
type ImageRepository struct {
	imagesDir string
	urlPrefix string
	db        *bolt.DB
	mu        sync.RWMutex
}

func CreateImageRepository(storageDir, urlPrefix string) (*ImageRepository, error) {
	if urlPrefix == "" {
		urlPrefix = DefaultImageURLPrefix
	}

	imagesDir := filepath.Join(storageDir, "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("create images directory: %w", err)
	}

	db, err := bolt.Open(filepath.Join(storageDir, "index.db"), 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open image index: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(imagesBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create images bucket: %w", err)
	}

	return &ImageRepository{
		imagesDir: imagesDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
		db:        db,
	}, nil
}

func (r *ImageRepository) Close() error {
	return r.db.Close()
}

func (r *ImageRepository) SaveDocument(ctx context.Context, doc *models.Document) ([]models.ImageRecord, error) {
	const funcName = "ImageRepository.SaveDocument"
	logger.Debug("attempting to save document images",
		zap.String("function", funcName),
		zap.String("pdf_id", doc.ID),
		zap.Int("image_count", len(doc.Images)),
	)

	if _, err := uuid.Parse(doc.ID); err != nil {
		return nil, fmt.Errorf("invalid document id %q: %w", doc.ID, err)
	}

	docDir := filepath.Join(r.imagesDir, doc.ID)
	if err := os.MkdirAll(docDir, 0755); err != nil {
		logger.Error("failed to create document directory",
			zap.String("function", funcName),
			zap.String("pdf_id", doc.ID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("create document directory: %w", err)
	}

	for _, img := range doc.Images {
		if err := ctx.Err(); err != nil {
			os.RemoveAll(docDir)
			return nil, err
		}

		if err := os.WriteFile(filepath.Join(docDir, img.Name), img.Data, 0644); err != nil {
			logger.Error("failed to write image",
				zap.String("function", funcName),
				zap.String("pdf_id", doc.ID),
				zap.String("image", img.Name),
				zap.Error(err),
			)
			os.RemoveAll(docDir)
			return nil, fmt.Errorf("write image %s: %w", img.Name, err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(imagesBucket).CreateBucketIfNotExists([]byte(doc.ID))
		if err != nil {
			return err
		}

		for i, img := range doc.Images {
			value, err := json.Marshal(storedImage{
				ID:         img.Name,
				PdfID:      doc.ID,
				SourceFile: doc.Filename,
				Page:       img.Page,
				Index:      img.Index,
				Size:       len(img.Data),
				CreatedAt:  doc.CreatedAt,
			})
			if err != nil {
				return err
			}
			if err := b.Put(sequenceKey(i), value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to index document images",
			zap.String("function", funcName),
			zap.String("pdf_id", doc.ID),
			zap.Error(err),
		)
		os.RemoveAll(docDir)
		return nil, fmt.Errorf("index document %s: %w", doc.ID, err)
	}

	records := make([]models.ImageRecord, 0, len(doc.Images))
	for _, img := range doc.Images {
		records = append(records, r.record(doc.ID, img.Name))
	}

	logger.Info("document images saved successfully",
		zap.String("function", funcName),
		zap.String("pdf_id", doc.ID),
		zap.String("source_file", doc.Filename),
		zap.Int("image_count", len(records)),
	)

	return records, nil
}

func (r *ImageRepository) ListImages(ctx context.Context, pdfID string) ([]models.ImageRecord, error) {
	const funcName = "ImageRepository.ListImages"
	logger.Debug("attempting to list images",
		zap.String("function", funcName),
		zap.String("pdf_id", pdfID),
	)

	if _, err := uuid.Parse(pdfID); err != nil {
		logger.Warn("invalid pdf id",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
		)
		return nil, errs.ErrDocumentNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]models.ImageRecord, 0)
	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(imagesBucket).Bucket([]byte(pdfID))
		if b == nil {
			return errs.ErrDocumentNotFound
		}

		return b.ForEach(func(_, v []byte) error {
			var img storedImage
			if err := json.Unmarshal(v, &img); err != nil {
				return err
			}
			records = append(records, r.record(pdfID, img.ID))
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, errs.ErrDocumentNotFound) {
			logger.Warn("document not found",
				zap.String("function", funcName),
				zap.String("pdf_id", pdfID),
			)
			return nil, err
		}
		logger.Error("failed to read image index",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("read image index: %w", err)
	}

	logger.Info("images listed successfully",
		zap.String("function", funcName),
		zap.String("pdf_id", pdfID),
		zap.Int("count", len(records)),
	)

	return records, nil
}

func (r *ImageRepository) ImagePath(ctx context.Context, pdfID, name string) (string, error) {
	const funcName = "ImageRepository.ImagePath"

	if _, err := uuid.Parse(pdfID); err != nil || !safeName(name) {
		logger.Warn("rejected image path",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
			zap.String("image", name),
		)
		return "", errs.ErrImageNotFound
	}

	path := filepath.Join(r.imagesDir, pdfID, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		logger.Warn("image not found",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
			zap.String("image", name),
		)
		return "", errs.ErrImageNotFound
	}

	return path, nil
}

// DeleteDocument drops a document's index entries and image files. Deleting
// an unknown document is not an error.
func (r *ImageRepository) DeleteDocument(ctx context.Context, pdfID string) error {
	const funcName = "ImageRepository.DeleteDocument"
	logger.Debug("attempting to delete document",
		zap.String("function", funcName),
		zap.String("pdf_id", pdfID),
	)

	if _, err := uuid.Parse(pdfID); err != nil {
		return fmt.Errorf("invalid document id %q: %w", pdfID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.db.Update(func(tx *bolt.Tx) error {
		images := tx.Bucket(imagesBucket)
		if images.Bucket([]byte(pdfID)) == nil {
			return nil
		}
		return images.DeleteBucket([]byte(pdfID))
	})
	if err != nil {
		logger.Error("failed to delete document index",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
			zap.Error(err),
		)
		return fmt.Errorf("delete index of %s: %w", pdfID, err)
	}

	if err := os.RemoveAll(filepath.Join(r.imagesDir, pdfID)); err != nil {
		logger.Error("failed to remove document images",
			zap.String("function", funcName),
			zap.String("pdf_id", pdfID),
			zap.Error(err),
		)
		return fmt.Errorf("remove images of %s: %w", pdfID, err)
	}

	logger.Info("document deleted",
		zap.String("function", funcName),
		zap.String("pdf_id", pdfID),
	)

	return nil
}

func (r *ImageRepository) record(pdfID, name string) models.ImageRecord {
	return models.ImageRecord{
		ID:    name,
		URL:   fmt.Sprintf("%s/%s/%s", r.urlPrefix, pdfID, name),
		PdfID: pdfID,
	}
}

func sequenceKey(i int) []byte {
	return []byte(fmt.Sprintf("%08d", i))
}

func safeName(name string) bool {
	return name != "" &&
		name != "." &&
		name != ".." &&
		filepath.Base(name) == name &&
		!strings.ContainsAny(name, `/\`)
}
