package extract

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/tiff"

	"github.com/spherical/catalog-extractor/internal/catalog"
	"github.com/spherical/catalog-extractor/internal/domain"
	"github.com/spherical/catalog-extractor/internal/observability"
)

// maxColorComponents excludes CMYK and other four-channel images.
const maxColorComponents = 4

var decodableFormats = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tif":  true,
	"tiff": true,
}

// EventFunc receives progress events synchronously
type EventFunc func(domain.StreamEvent)

// Service orchestrates the raw PDF extraction
type Service struct {
	opener domain.DocumentOpener
	logger *observability.Logger
}

// NewService creates a new extraction service
func NewService(opener domain.DocumentOpener, logger *observability.Logger) *Service {
	return &Service{
		opener: opener,
		logger: observability.OrDefault(logger).WithOperation("extract"),
	}
}

// Process reads every page of the PDF, keeps the non-blank page texts and
// writes each page's usable images into imagesDir as product_<page>_<n>.png.
// Any failure aborts the whole document and leaves imagesDir untouched.
func (s *Service) Process(ctx context.Context, pdfPath, imagesDir string, onEvent EventFunc) (*domain.ExtractedData, domain.ProcessingStats, error) {
	startTime := time.Now()
	var stats domain.ProcessingStats
	log := s.logger.With().Str("pdf", pdfPath).Logger()

	s.emit(onEvent, domain.StreamEvent{
		Type:    domain.EventStart,
		Payload: fmt.Sprintf("Starting extraction of %s", pdfPath),
	})

	doc, err := s.opener.Open(pdfPath)
	if err != nil {
		return nil, stats, s.fail(log, onEvent, domain.ExtractionError("failed to open PDF", err))
	}
	defer doc.Close()

	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, stats, s.fail(log, onEvent, domain.IOError("failed to create images directory", err))
	}

	stagingDir, err := os.MkdirTemp(imagesDir, ".staging-*")
	if err != nil {
		return nil, stats, s.fail(log, onEvent, domain.IOError("failed to create staging directory", err))
	}
	defer os.RemoveAll(stagingDir)

	stats.TotalPages = doc.NumPages()
	log.Info().Int("pages", stats.TotalPages).Msg("PDF opened")

	data := &domain.ExtractedData{
		Products:    []domain.Fragment{},
		Images:      []domain.ImageRef{},
		TextContent: []domain.PageRecord{},
	}

	for page := 1; page <= stats.TotalPages; page++ {
		select {
		case <-ctx.Done():
			return nil, stats, s.fail(log, onEvent, ctx.Err())
		default:
		}

		s.emit(onEvent, domain.StreamEvent{
			Type:       domain.EventPageProcessing,
			PageNumber: page,
			TotalPages: stats.TotalPages,
		})

		text, err := doc.PageText(page)
		if err != nil {
			return nil, stats, s.fail(log, onEvent, domain.ExtractionError(fmt.Sprintf("failed to read page %d", page), err))
		}
		if strings.TrimSpace(text) != "" {
			data.TextContent = append(data.TextContent, domain.PageRecord{PageNumber: page, Text: text})
			stats.TextPages++
		}

		pageLog := log.With().Int("page", page).Logger()
		refs, skipped, err := s.saveImages(pageLog, doc, page, imagesDir, stagingDir, onEvent)
		if err != nil {
			return nil, stats, s.fail(pageLog, onEvent, err)
		}
		data.Images = append(data.Images, refs...)
		stats.ImagesSaved += len(refs)
		stats.ImagesSkipped += skipped

		s.emit(onEvent, domain.StreamEvent{
			Type:       domain.EventPageComplete,
			PageNumber: page,
			TotalPages: stats.TotalPages,
		})
	}

	if err := publishStaged(stagingDir, imagesDir, data.Images); err != nil {
		return nil, stats, s.fail(log, onEvent, err)
	}

	stats.TotalTime = time.Since(startTime)
	s.emit(onEvent, domain.StreamEvent{
		Type: domain.EventComplete,
		Payload: fmt.Sprintf("Extraction complete: %d text pages, %d images in %v",
			stats.TextPages, stats.ImagesSaved, stats.TotalTime.Round(time.Millisecond)),
	})

	log.Info().
		Int("text_pages", stats.TextPages).
		Int("images", stats.ImagesSaved).
		Int("images_skipped", stats.ImagesSkipped).
		Dur("elapsed", stats.TotalTime).
		Msg("Extraction complete")

	return data, stats, nil
}

// saveImages re-encodes the page's usable images as PNG into the staging directory
func (s *Service) saveImages(log *observability.Logger, doc domain.Document, page int, imagesDir, stagingDir string, onEvent EventFunc) ([]domain.ImageRef, int, error) {
	images, err := doc.PageImages(page)
	if err != nil {
		return nil, 0, domain.ExtractionError(fmt.Sprintf("failed to list images on page %d", page), err)
	}

	var refs []domain.ImageRef
	skipped := 0
	for _, img := range images {
		tooManyComponents := img.Components >= maxColorComponents
		if tooManyComponents || !decodableFormats[strings.ToLower(img.Format)] {
			evt := log.Warn()
			if tooManyComponents {
				evt = log.Debug()
			}
			evt.Int("index", img.Index).
				Int("components", img.Components).
				Str("format", img.Format).
				Bool("too_many_components", tooManyComponents).
				Msg("skipping image")
			skipped++
			continue
		}

		decoded, _, err := image.Decode(img.Data)
		if err != nil {
			return nil, 0, domain.ExtractionError(fmt.Sprintf("failed to decode image %d on page %d", img.Index, page), err)
		}

		filename := catalog.ImageFilename(page, img.Index)
		if err := writePNG(filepath.Join(stagingDir, filename), decoded); err != nil {
			return nil, 0, domain.IOError(fmt.Sprintf("failed to write %s", filename), err)
		}

		refs = append(refs, domain.ImageRef{
			PageNumber: page,
			Filename:   filename,
			Path:       filepath.Join(imagesDir, filename),
		})

		s.emit(onEvent, domain.StreamEvent{
			Type:       domain.EventImageSaved,
			PageNumber: page,
			Payload:    filename,
		})
	}

	return refs, skipped, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// publishStaged moves the staged images into their final directory
func publishStaged(stagingDir, imagesDir string, refs []domain.ImageRef) error {
	for _, ref := range refs {
		if err := os.Rename(filepath.Join(stagingDir, ref.Filename), filepath.Join(imagesDir, ref.Filename)); err != nil {
			return domain.IOError(fmt.Sprintf("failed to publish %s", ref.Filename), err)
		}
	}
	return nil
}

// emit forwards an event to the callback, if any
func (s *Service) emit(onEvent EventFunc, event domain.StreamEvent) {
	if onEvent == nil {
		return
	}
	event.Timestamp = time.Now()
	onEvent(event)
}

// fail reports err as an error event and returns it
func (s *Service) fail(log *observability.Logger, onEvent EventFunc, err error) error {
	log.Error().Err(err).Msg("Extraction failed")
	s.emit(onEvent, domain.StreamEvent{
		Type:    domain.EventError,
		Payload: err.Error(),
	})
	return err
}
