package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spherical/catalog-extractor/cmd/catalog-extractor/ui"
	"github.com/spherical/catalog-extractor/internal/domain"
	"github.com/spherical/catalog-extractor/internal/pipeline"
)

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the product catalogue from extracted fragments",
		Long: `Build reads the fragment file written by extract, reconstructs up to the
configured number of products and writes final_products.json, the JS module
and any configured exports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.Section("Catalogue Build")
			_, err := runBuild(cmd)
			return err
		},
	}
}

func runBuild(cmd *cobra.Command) (*pipeline.BuildResult, error) {
	spinner := ui.NewSpinner("Building product catalogue...")
	spinner.Start()
	result, err := newPipeline().Build(cmd.Context())
	spinner.Stop()

	if err != nil {
		if domain.IsType(err, domain.ErrorTypeMissingInput) {
			ui.Error("%v", err)
			ui.Info("Run 'catalog-extractor extract <pdf>' first")
		} else {
			ui.Error("Build failed: %v", err)
		}
		return nil, err
	}

	printBuildSummary(result)
	return result, nil
}

func printBuildSummary(result *pipeline.BuildResult) {
	ui.Success("Created %d products in %v", len(result.Products), result.Elapsed.Round(time.Millisecond))
	if result.Report.TruncatedByLimit > 0 {
		ui.Warning("%d further product groups were left out by the product limit", result.Report.TruncatedByLimit)
	}
	if result.Report.DroppedSpecs > 0 {
		ui.Warning("%d specification fragments were too far from any product", result.Report.DroppedSpecs)
	}

	ui.Newline()
	ui.Info("Files generated:")
	for _, f := range result.Files {
		fmt.Printf("  - %s\n", f)
	}
	if result.RunID != uuid.Nil {
		ui.Info("Stored as run %s", result.RunID)
	}

	ui.Newline()
	ui.Info("Category distribution:")
	labels := make([]string, len(result.Distribution))
	counts := make([]int, len(result.Distribution))
	for i, c := range result.Distribution {
		labels[i] = string(c.Category)
		counts[i] = c.Count
	}
	ui.Distribution(labels, counts)

	if ui.Verbose() {
		ui.Newline()
		rows := make([][]string, 0, len(result.Products))
		for _, p := range result.Products {
			rows = append(rows, []string{strconv.Itoa(p.ID), p.Name, string(p.Category), strconv.Itoa(p.Price), p.Weight})
		}
		ui.Table([]string{"ID", "Name", "Category", "Price", "Weight"}, rows)
	}
}
