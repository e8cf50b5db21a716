package main

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supchaser/pdf-image-extractor/internal/app/delivery"
	"github.com/supchaser/pdf-image-extractor/internal/app/models"
	"github.com/supchaser/pdf-image-extractor/internal/app/repository"
	"github.com/supchaser/pdf-image-extractor/internal/app/usecase"
	"github.com/supchaser/pdf-image-extractor/internal/client/files"
	"github.com/supchaser/pdf-image-extractor/internal/client/resolver"
	"github.com/supchaser/pdf-image-extractor/internal/client/transport"
	"github.com/supchaser/pdf-image-extractor/internal/config"
	"github.com/supchaser/pdf-image-extractor/internal/engine"
	"github.com/supchaser/pdf-image-extractor/internal/utils/errs"
	"github.com/supchaser/pdf-image-extractor/internal/utils/logger"
)

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	m.Run()
}

func writePDF(t *testing.T, dir, name string, colors ...color.NRGBA) string {
	t.Helper()

	readers := make([]io.Reader, 0, len(colors))
	for _, c := range colors {
		img := image.NewNRGBA(image.Rect(0, 0, 3, 3))
		for y := 0; y < 3; y++ {
			for x := 0; x < 3; x++ {
				img.SetNRGBA(x, y, c)
			}
		}
		var buf bytes.Buffer
		require.NoError(t, png.Encode(&buf, img))
		readers = append(readers, &buf)
	}

	var out bytes.Buffer
	require.NoError(t, api.ImportImages(nil, &out, readers, nil, nil))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0644))
	return path
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	repo, err := repository.CreateImageRepository(t.TempDir(), "/api/v1/images")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	extractionUsecase := usecase.CreateExtractionUsecase(engine.CreatePdfcpuEngine(), repo, usecase.Options{})
	router := newRouter(delivery.CreateExtractionDelivery(extractionUsecase), &config.Config{RateLimitRPS: 100})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func testBatch(t *testing.T) *models.Batch {
	t.Helper()

	dir := t.TempDir()
	opened, err := files.OpenAll([]string{
		writePDF(t, dir, "first.pdf", color.NRGBA{R: 255, A: 255}, color.NRGBA{G: 255, A: 255}),
		writePDF(t, dir, "second.pdf", color.NRGBA{B: 255, A: 255}),
	})
	require.NoError(t, err)

	batch := &models.Batch{}
	for _, f := range opened {
		batch.Files = append(batch.Files, f)
	}
	return batch
}

func TestRoundTrip_Preview(t *testing.T) {
	server := newTestServer(t)
	apiBase := server.URL + "/api/v1"
	tr := transport.CreateHTTPTransport(apiBase, server.Client(), 0)

	result, err := tr.Submit(context.Background(), models.ExtractionRequest{Batch: testBatch(t), Mode: models.ModePreview})

	require.NoError(t, err)
	assert.Equal(t, models.ResultListing, result.Kind)
	assert.Equal(t, 3, result.ImageCount)
	require.Len(t, result.ImageRefs, 3)
	assert.True(t, strings.HasSuffix(result.ImageRefs[0], "/page_1_image_1.png"))
	assert.True(t, strings.HasSuffix(result.ImageRefs[1], "/page_2_image_1.png"))
	assert.True(t, strings.HasSuffix(result.ImageRefs[2], "/page_1_image_1.png"))

	firstID := strings.SplitN(result.ImageRefs[0], "/", 2)[0]
	secondID := strings.SplitN(result.ImageRefs[2], "/", 2)[0]
	assert.NotEqual(t, firstID, secondID)

	for _, location := range resolver.New(apiBase).ResolveAll(result.ImageRefs) {
		data, err := tr.FetchImage(context.Background(), location)
		require.NoError(t, err)
		decoded, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 3, decoded.Bounds().Dx())
	}

	records, err := tr.ListDocumentImages(context.Background(), firstID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "page_1_image_1.png", records[0].ID)
	assert.Equal(t, "/api/v1/images/"+firstID+"/page_1_image_1.png", records[0].URL)
}

func TestRoundTrip_Archive(t *testing.T) {
	server := newTestServer(t)
	tr := transport.CreateHTTPTransport(server.URL+"/api/v1", server.Client(), 0)

	result, err := tr.Submit(context.Background(), models.ExtractionRequest{Batch: testBatch(t), Mode: models.ModeArchive})

	require.NoError(t, err)
	assert.Equal(t, models.ResultArchive, result.Kind)
	assert.Equal(t, 3, result.ImageCount)

	zr, err := zip.NewReader(bytes.NewReader(result.Archive), int64(len(result.Archive)))
	require.NoError(t, err)
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	assert.Equal(t, []string{
		"pdf_1/page_1_image_1.png",
		"pdf_1/page_2_image_1.png",
		"pdf_2/page_1_image_1.png",
	}, names)
}

type declaredFile struct {
	name string
	data []byte
}

func (f *declaredFile) Name() string        { return f.name }
func (f *declaredFile) Size() int64         { return int64(len(f.data)) }
func (f *declaredFile) ContentType() string { return models.ContentTypePDF }

func (f *declaredFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

func TestRoundTrip_ServiceRejectsNonPDFContent(t *testing.T) {
	server := newTestServer(t)
	tr := transport.CreateHTTPTransport(server.URL+"/api/v1", server.Client(), 0)

	result, err := tr.Submit(context.Background(), models.ExtractionRequest{
		Batch: &models.Batch{Files: []models.FileHandle{&declaredFile{name: "fake.pdf", data: []byte("plain text")}}},
		Mode:  models.ModePreview,
	})

	assert.Nil(t, result)
	var se *errs.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadRequest, se.StatusCode)
	assert.Equal(t, "'fake.pdf' is not a valid PDF document", errs.Message(err))
}
