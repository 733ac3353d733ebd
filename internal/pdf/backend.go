package pdf

import (
	"fmt"
	"os"
	"sort"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfcpulib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/spherical/catalog-extractor/internal/domain"
)

// Backend opens catalogues with MuPDF for page text and pdfcpu for the
// embedded image resources, which MuPDF's page rendering does not expose.
type Backend struct {
	validator *Validator
}

// NewBackend creates a new PDF backend
func NewBackend() *Backend {
	return &Backend{validator: NewValidator()}
}

// Open validates the path and opens the document with both engines
func (b *Backend) Open(path string) (domain.Document, error) {
	if err := b.validator.ValidatePDFPath(path); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open text layer: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("open image layer: %w", err)
	}
	defer f.Close()

	ctx, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		doc.Close()
		return nil, fmt.Errorf("read image layer: %w", err)
	}

	return &document{doc: doc, ctx: ctx}, nil
}

type document struct {
	doc *fitz.Document
	ctx *model.Context
}

func (d *document) NumPages() int {
	return d.doc.NumPage()
}

func (d *document) PageText(page int) (string, error) {
	text, err := d.doc.Text(page - 1)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", page, err)
	}
	return text, nil
}

// PageImages lists the page's image resources ordered by object number so
// that repeated runs number them identically.
func (d *document) PageImages(page int) ([]domain.EmbeddedImage, error) {
	found, err := pdfcpulib.ExtractPageImages(d.ctx, page, false)
	if err != nil {
		return nil, fmt.Errorf("page %d images: %w", page, err)
	}

	objNrs := make([]int, 0, len(found))
	for objNr := range found {
		objNrs = append(objNrs, objNr)
	}
	sort.Ints(objNrs)

	images := make([]domain.EmbeddedImage, 0, len(objNrs))
	for i, objNr := range objNrs {
		img := found[objNr]
		images = append(images, domain.EmbeddedImage{
			Index:      i + 1,
			Components: img.Comp,
			Format:     img.FileType,
			Data:       img,
		})
	}

	return images, nil
}

func (d *document) Close() error {
	return d.doc.Close()
}
