package engine

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
	"go.uber.org/zap"
)

// PdfcpuEngine extracts embedded image resources with pdfcpu.
type PdfcpuEngine struct {
	validationMode int
}

func CreatePdfcpuEngine() *PdfcpuEngine {
	return &PdfcpuEngine{
		validationMode: model.ValidationRelaxed,
	}
}

// configuration is built per call; pdfcpu writes to it while processing.
func (e *PdfcpuEngine) configuration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = e.validationMode
	return conf
}

type rawImage struct {
	page  int
	objNr int
	ext   string
	data  []byte
}

// ExtractImages returns the images of a document in page-then-position order.
// An image object referenced from several pages is returned once, on the
// first page that uses it.
func (e *PdfcpuEngine) ExtractImages(ctx context.Context, name string, rs io.ReadSeeker) ([]*models.ExtractedImage, error) {
	const funcName = "PdfcpuEngine.ExtractImages"
	logger.Debug("extracting images",
		zap.String("function", funcName),
		zap.String("file_name", name),
	)

	var raws []rawImage
	digest := func(img model.Image, _ bool, _ int) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, err := io.ReadAll(img)
		if err != nil {
			logger.Warn("failed to read image stream",
				zap.String("function", funcName),
				zap.String("file_name", name),
				zap.Int("page", img.PageNr),
				zap.Int("obj_nr", img.ObjNr),
				zap.Error(err),
			)
			return nil
		}

		raws = append(raws, rawImage{
			page:  img.PageNr,
			objNr: img.ObjNr,
			ext:   normalizeExtension(img.FileType),
			data:  data,
		})
		return nil
	}

	if err := api.ExtractImages(rs, nil, digest, e.configuration()); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn("pdf engine rejected document",
			zap.String("function", funcName),
			zap.String("file_name", name),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrInvalidPDF, name, err)
	}

	images := orderImages(raws)

	logger.Info("images extracted",
		zap.String("function", funcName),
		zap.String("file_name", name),
		zap.Int("image_count", len(images)),
	)

	return images, nil
}

func orderImages(raws []rawImage) []*models.ExtractedImage {
	sort.SliceStable(raws, func(i, j int) bool {
		if raws[i].page != raws[j].page {
			return raws[i].page < raws[j].page
		}
		return raws[i].objNr < raws[j].objNr
	})

	seen := make(map[int]bool, len(raws))
	perPage := make(map[int]int)
	images := make([]*models.ExtractedImage, 0, len(raws))
	for _, r := range raws {
		if r.objNr > 0 {
			if seen[r.objNr] {
				continue
			}
			seen[r.objNr] = true
		}

		perPage[r.page]++
		index := perPage[r.page]
		images = append(images, &models.ExtractedImage{
			Name:      fmt.Sprintf("page_%d_image_%d.%s", r.page, index, r.ext),
			Page:      r.page,
			Index:     index,
			Extension: r.ext,
			Data:      r.data,
		})
	}

	return images
}

func normalizeExtension(fileType string) string {
	ext := strings.TrimPrefix(strings.ToLower(fileType), ".")
	switch ext {
	case "":
		return "png"
	case "jpeg":
		return "jpg"
	case "tiff":
		return "tif"
	default:
		return ext
	}
}
