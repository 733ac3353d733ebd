// Package pipeline wires extraction, catalogue building and output writing
// into the commands exposed by the CLI.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spherical/catalog-extractor/internal/catalog"
	"github.com/spherical/catalog-extractor/internal/config"
	"github.com/spherical/catalog-extractor/internal/domain"
	"github.com/spherical/catalog-extractor/internal/extract"
	"github.com/spherical/catalog-extractor/internal/observability"
	"github.com/spherical/catalog-extractor/internal/storage"
)

// ExtractResult is the outcome of the extraction step.
type ExtractResult struct {
	Data      *domain.ExtractedData
	Fragments []domain.Fragment
	Stats     domain.ProcessingStats
	Files     []string
}

// CategoryCount is the number of products in one category.
type CategoryCount struct {
	Category domain.Category
	Count    int
}

// BuildResult is the outcome of the build step.
type BuildResult struct {
	Products     []domain.Product
	Report       catalog.BuildReport
	Distribution []CategoryCount
	Files        []string
	RunID        uuid.UUID
	Elapsed      time.Duration
}

// Pipeline runs the extract and build steps against one configuration.
type Pipeline struct {
	cfg       *config.Config
	extractor *extract.Service
	logger    *observability.Logger
}

// New creates a pipeline. opener supplies the PDF backend.
func New(cfg *config.Config, opener domain.DocumentOpener, logger *observability.Logger) *Pipeline {
	logger = observability.OrDefault(logger)
	return &Pipeline{
		cfg:       cfg,
		extractor: extract.NewService(opener, logger),
		logger:    logger.WithOperation("pipeline"),
	}
}

// RulesFromConfig maps the catalog configuration onto builder rules.
func RulesFromConfig(c config.CatalogConfig) catalog.Rules {
	return catalog.Rules{
		MaxProducts:        c.MaxProducts,
		AssociationWindow:  c.AssociationWindow,
		PriceFloor:         c.PriceFloor,
		DefaultWeightGrams: c.DefaultWeightGrams,
		ImagePagesBefore:   c.ImagePagesBefore,
		ImagePagesAfter:    c.ImagePagesAfter,
		LastImagePage:      c.LastImagePage,
		ImagesPerPage:      c.ImagesPerPage,
		MaxProductImages:   c.MaxProductImages,
	}
}

// Extract reads the PDF, writes its images and page texts, and derives the
// candidate fragment file consumed by Build.
func (p *Pipeline) Extract(ctx context.Context, pdfPath string, onEvent extract.EventFunc) (*ExtractResult, error) {
	data, stats, err := p.extractor.Process(ctx, pdfPath, p.cfg.ImagesPath(), onEvent)
	if err != nil {
		return nil, err
	}

	fragments := catalog.ExtractFragments(data.TextContent)

	extractedPath := p.cfg.ExtractedPath()
	if err := storage.WriteExtracted(extractedPath, data); err != nil {
		return nil, err
	}
	fragmentsPath := p.cfg.FragmentsPath()
	if err := storage.WriteFragments(fragmentsPath, fragments); err != nil {
		return nil, err
	}

	p.logger.Info().
		Int("text_pages", stats.TextPages).
		Int("images", stats.ImagesSaved).
		Int("fragments", len(fragments)).
		Str("extracted", extractedPath).
		Str("fragments_file", fragmentsPath).
		Msg("extraction artefacts written")

	return &ExtractResult{
		Data:      data,
		Fragments: fragments,
		Stats:     stats,
		Files:     []string{extractedPath, fragmentsPath},
	}, nil
}

// Build turns the fragment file into the published product catalogue.
// Nothing is written when the fragment file is missing or malformed.
func (p *Pipeline) Build(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	fragments, err := storage.LoadFragments(p.cfg.FragmentsPath())
	if err != nil {
		return nil, err
	}

	builder := catalog.NewBuilder(
		RulesFromConfig(p.cfg.Catalog),
		catalog.NewDirLocator(p.cfg.ImagesPath()),
		p.logger,
	)
	products, report := builder.Build(fragments)

	result := &BuildResult{
		Products:     products,
		Report:       report,
		Distribution: CategoryDistribution(products),
	}

	productsPath := p.cfg.OutputPath(p.cfg.Output.ProductsFile)
	jsPath := p.cfg.OutputPath(p.cfg.Output.JSModuleFile)
	if err := storage.WriteProducts(productsPath, jsPath, p.cfg.Output.JSConstName, products); err != nil {
		return nil, err
	}
	result.Files = append(result.Files, productsPath)
	if jsPath != "" {
		result.Files = append(result.Files, jsPath)
	}

	if path := p.cfg.OutputPath(p.cfg.Output.XLSXFile); path != "" {
		if err := storage.WriteProductsXLSX(path, products); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	if path := p.cfg.OutputPath(p.cfg.Output.ParquetFile); path != "" {
		if err := storage.WriteProductsParquet(path, products); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}

	if p.cfg.Database.Driver != "" {
		runID, err := p.saveToDatabase(ctx, products)
		if err != nil {
			return nil, err
		}
		result.RunID = runID
	}

	result.Elapsed = time.Since(start)
	p.logger.Info().
		Int("products", len(products)).
		Int("dropped_specs", report.DroppedSpecs).
		Int("truncated", report.TruncatedByLimit).
		Strs("files", result.Files).
		Dur("elapsed", result.Elapsed).
		Msg("catalog written")

	return result, nil
}

// Run extracts the PDF and builds the catalogue from it.
func (p *Pipeline) Run(ctx context.Context, pdfPath string, onEvent extract.EventFunc) (*ExtractResult, *BuildResult, error) {
	extracted, err := p.Extract(ctx, pdfPath, onEvent)
	if err != nil {
		return nil, nil, err
	}
	built, err := p.Build(ctx)
	if err != nil {
		return extracted, nil, err
	}
	return extracted, built, nil
}

func (p *Pipeline) saveToDatabase(ctx context.Context, products []domain.Product) (uuid.UUID, error) {
	db, err := storage.OpenDatabase(ctx, p.cfg.Database.Driver, p.cfg.Database.DSN)
	if err != nil {
		return uuid.Nil, err
	}
	defer db.Close()

	repo := storage.NewProductRepository(db, p.cfg.Database.Driver)
	if err := repo.EnsureSchema(ctx); err != nil {
		return uuid.Nil, err
	}
	runID, err := repo.SaveRun(ctx, products)
	if err != nil {
		return uuid.Nil, err
	}

	p.logger.Info().Str("run_id", runID.String()).Str("driver", p.cfg.Database.Driver).Int("rows", len(products)).Msg("products stored")
	return runID, nil
}

// CategoryDistribution counts products per category in first-seen order.
func CategoryDistribution(products []domain.Product) []CategoryCount {
	var counts []CategoryCount
	index := make(map[domain.Category]int)
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(counts)
			index[p.Category] = i
			counts = append(counts, CategoryCount{Category: p.Category})
		}
		counts[i].Count++
	}
	return counts
}
