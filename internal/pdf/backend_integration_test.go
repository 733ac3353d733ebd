package pdf

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/catalog-extractor/internal/extract"
	"github.com/spherical/catalog-extractor/internal/observability"
)

func init() {
	_ = godotenv.Load("../../.env")
}

// samplePDF returns a real catalogue to run against, or skips the test.
func samplePDF(t *testing.T) string {
	t.Helper()
	path := os.Getenv("CATALOG_SAMPLE_PDF")
	if path == "" {
		t.Skip("CATALOG_SAMPLE_PDF not set")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Skipf("Sample PDF not found at %s", path)
	}
	return path
}

func TestBackend_SampleCatalogue(t *testing.T) {
	path := samplePDF(t)

	doc, err := NewBackend().Open(path)
	require.NoError(t, err)
	defer doc.Close()

	require.Greater(t, doc.NumPages(), 0)

	textPages := 0
	for page := 1; page <= doc.NumPages(); page++ {
		text, err := doc.PageText(page)
		require.NoError(t, err, "page %d", page)
		if strings.TrimSpace(text) != "" {
			textPages++
		}

		images, err := doc.PageImages(page)
		require.NoError(t, err, "page %d", page)
		for i, img := range images {
			assert.Equal(t, i+1, img.Index)
			assert.NotEmpty(t, img.Format)
		}
	}
	assert.Greater(t, textPages, 0)
}

func TestExtract_SampleCatalogue(t *testing.T) {
	path := samplePDF(t)
	imagesDir := filepath.Join(t.TempDir(), "images")

	svc := extract.NewService(NewBackend(), observability.Nop())
	data, stats, err := svc.Process(context.Background(), path, imagesDir, nil)
	require.NoError(t, err)

	assert.Equal(t, stats.TextPages, len(data.TextContent))
	for _, ref := range data.Images {
		assert.FileExists(t, ref.Path)
	}
	t.Logf("pages=%d text_pages=%d images=%d skipped=%d",
		stats.TotalPages, stats.TextPages, stats.ImagesSaved, stats.ImagesSkipped)
}
