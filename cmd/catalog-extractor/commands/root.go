// Package commands implements the catalog-extractor command tree.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/spherical/catalog-extractor/cmd/catalog-extractor/ui"
	"github.com/spherical/catalog-extractor/internal/config"
	"github.com/spherical/catalog-extractor/internal/domain"
	"github.com/spherical/catalog-extractor/internal/observability"
	"github.com/spherical/catalog-extractor/internal/pdf"
	"github.com/spherical/catalog-extractor/internal/pipeline"
)

var (
	cfgFile   string
	outputDir string
	verbose   bool
	noColor   bool
)

// app holds what every command needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *observability.Logger
}

var current app

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog-extractor",
		Short: "Turn a PDF product catalogue into storefront product data",
		Long: `catalog-extractor reads a PDF catalogue, saves its page text and embedded
images, and reconstructs a product list (final_products.json plus a JS module)
from the loosely structured page text.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
	}

	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	root.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "directory for all generated files")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(newExtractCmd(), newBuildCmd(), newRunCmd())
	return root
}

func initApp() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return domain.ConfigError("load config", err)
	}
	if outputDir != "" {
		cfg.Extraction.OutputDir = outputDir
	}

	level := cfg.Observability.LogLevel
	if verbose {
		level = "debug"
	}

	ui.InitUI(noColor, verbose)
	current = app{
		cfg: cfg,
		logger: observability.NewLogger(observability.LogConfig{
			Level:       level,
			Format:      cfg.Observability.LogFormat,
			ServiceName: "catalog-extractor",
		}),
	}
	return nil
}

func newPipeline() *pipeline.Pipeline {
	return pipeline.New(current.cfg, pdf.NewBackend(), current.logger)
}
