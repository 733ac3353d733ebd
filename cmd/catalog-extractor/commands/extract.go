package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spherical/catalog-extractor/cmd/catalog-extractor/ui"
	"github.com/spherical/catalog-extractor/internal/domain"
	"github.com/spherical/catalog-extractor/internal/extract"
	"github.com/spherical/catalog-extractor/internal/pipeline"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Extract page text and images from a PDF catalogue",
		Long: `Extract reads every page of the catalogue, writes its usable images as
product_<page>_<n>.png and saves the page texts and candidate product
fragments for the build step.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Section("PDF Extraction")
			_, err := runExtract(cmd, args[0])
			return err
		},
	}
}

func runExtract(cmd *cobra.Command, pdfPath string) (*pipeline.ExtractResult, error) {
	ui.Info("PDF file: %s", pdfPath)
	ui.Info("Images directory: %s", current.cfg.ImagesPath())
	ui.Newline()

	var bar *ui.ProgressBar
	result, err := newPipeline().Extract(cmd.Context(), pdfPath, progressHandler(&bar))
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		ui.Error("Extraction failed: %v", err)
		return nil, err
	}

	ui.Success("Extracted %d text pages and %d images in %v",
		result.Stats.TextPages, result.Stats.ImagesSaved, result.Stats.TotalTime.Round(time.Millisecond))
	if result.Stats.ImagesSkipped > 0 {
		ui.Warning("%d images skipped (CMYK or unsupported encoding)", result.Stats.ImagesSkipped)
	}
	ui.Info("Found %d candidate fragments", len(result.Fragments))
	for _, f := range result.Files {
		ui.Info("Wrote %s", f)
	}
	return result, nil
}

// progressHandler drives a page progress bar from extraction events.
func progressHandler(bar **ui.ProgressBar) extract.EventFunc {
	return func(e domain.StreamEvent) {
		switch e.Type {
		case domain.EventPageProcessing:
			if *bar == nil {
				*bar = ui.NewProgressBar(int64(e.TotalPages), "Processing pages")
			}
			(*bar).Describe(fmt.Sprintf("Page %d/%d", e.PageNumber, e.TotalPages))
		case domain.EventPageComplete:
			if *bar != nil {
				(*bar).Set(int64(e.PageNumber))
			}
		}
	}
}
