// Package config provides configuration loading for the catalog extractor.
// Supports YAML files, .env files, environment variables and programmatic overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the catalog extractor.
type Config struct {
	Extraction    ExtractionConfig    `yaml:"extraction"`
	Catalog       CatalogConfig       `yaml:"catalog"`
	Output        OutputConfig        `yaml:"output"`
	Database      DatabaseConfig      `yaml:"database"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ExtractionConfig controls where raw extraction artefacts land.
type ExtractionConfig struct {
	OutputDir     string `yaml:"output_dir"`
	ImagesDir     string `yaml:"images_dir"`
	ExtractedFile string `yaml:"extracted_file"`
	FragmentsFile string `yaml:"fragments_file"`
}

// CatalogConfig holds the heuristic constants of the catalog builder.
type CatalogConfig struct {
	MaxProducts        int `yaml:"max_products"`
	AssociationWindow  int `yaml:"association_window"`
	PriceFloor         int `yaml:"price_floor"`
	DefaultWeightGrams int `yaml:"default_weight_grams"`
	ImagePagesBefore   int `yaml:"image_pages_before"`
	ImagePagesAfter    int `yaml:"image_pages_after"`
	LastImagePage      int `yaml:"last_image_page"`
	ImagesPerPage      int `yaml:"images_per_page"`
	MaxProductImages   int `yaml:"max_product_images"`
}

// OutputConfig names the files produced by the build step.
// Empty xlsx/parquet paths disable those exports.
type OutputConfig struct {
	ProductsFile string `yaml:"products_file"`
	JSModuleFile string `yaml:"js_module_file"`
	JSConstName  string `yaml:"js_const_name"`
	XLSXFile     string `yaml:"xlsx_file"`
	ParquetFile  string `yaml:"parquet_file"`
}

// DatabaseConfig holds the optional SQL product sink settings.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "", sqlite or postgres
	DSN    string `yaml:"dsn"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	_ = godotenv.Load() // Ignore error if .env doesn't exist

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			OutputDir:     ".",
			ImagesDir:     "images",
			ExtractedFile: "extracted_data.json",
			FragmentsFile: "products_data.json",
		},
		Catalog: CatalogConfig{
			MaxProducts:        30,
			AssociationWindow:  2,
			PriceFloor:         999,
			DefaultWeightGrams: 500,
			ImagePagesBefore:   1,
			ImagePagesAfter:    2,
			LastImagePage:      40,
			ImagesPerPage:      14,
			MaxProductImages:   3,
		},
		Output: OutputConfig{
			ProductsFile: "final_products.json",
			JSModuleFile: filepath.Join("js", "pdf_products.js"),
			JSConstName:  "pdfProducts",
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Catalog.MaxProducts < 1 {
		return fmt.Errorf("max_products must be positive, got %d", c.Catalog.MaxProducts)
	}

	if c.Catalog.AssociationWindow < 0 {
		return fmt.Errorf("association_window cannot be negative")
	}

	if c.Catalog.DefaultWeightGrams < 1 {
		return fmt.Errorf("default_weight_grams must be positive")
	}

	if c.Catalog.PriceFloor%100 != 99 {
		return fmt.Errorf("price_floor must end in 99, got %d", c.Catalog.PriceFloor)
	}

	if c.Catalog.ImagesPerPage < 1 || c.Catalog.MaxProductImages < 1 || c.Catalog.LastImagePage < 1 {
		return fmt.Errorf("image window settings must be positive")
	}

	if c.Catalog.ImagePagesBefore < 0 || c.Catalog.ImagePagesAfter < 0 {
		return fmt.Errorf("image_pages_before and image_pages_after cannot be negative")
	}

	if c.Output.ProductsFile == "" {
		return fmt.Errorf("products_file is required")
	}

	if c.Output.JSConstName == "" {
		return fmt.Errorf("js_const_name is required")
	}

	switch c.Database.Driver {
	case "":
	case "sqlite", "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("database dsn is required for driver %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}

	return nil
}

// ImagesPath returns the images directory resolved against the output directory.
func (c *Config) ImagesPath() string {
	return ResolveRelativePath(c.Extraction.OutputDir, c.Extraction.ImagesDir)
}

// ExtractedPath returns the path of extracted_data.json.
func (c *Config) ExtractedPath() string {
	return ResolveRelativePath(c.Extraction.OutputDir, c.Extraction.ExtractedFile)
}

// FragmentsPath returns the path of the intermediate fragment file.
func (c *Config) FragmentsPath() string {
	return ResolveRelativePath(c.Extraction.OutputDir, c.Extraction.FragmentsFile)
}

// OutputPath resolves a build output file against the output directory.
func (c *Config) OutputPath(name string) string {
	if name == "" {
		return ""
	}
	return ResolveRelativePath(c.Extraction.OutputDir, name)
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("CATALOG_OUTPUT_DIR"); v != "" {
		cfg.Extraction.OutputDir = v
	}

	if v := os.Getenv("CATALOG_IMAGES_DIR"); v != "" {
		cfg.Extraction.ImagesDir = v
	}

	if v := os.Getenv("CATALOG_MAX_PRODUCTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CATALOG_MAX_PRODUCTS: %w", err)
		}
		cfg.Catalog.MaxProducts = n
	}

	if v := os.Getenv("CATALOG_DB_DRIVER"); v != "" {
		cfg.Database.Driver = strings.ToLower(v)
	}

	if v := os.Getenv("CATALOG_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}

	return nil
}

// ResolveRelativePath resolves targetPath against baseDir unless it is absolute.
func ResolveRelativePath(baseDir, targetPath string) string {
	if filepath.IsAbs(targetPath) || baseDir == "" {
		return targetPath
	}
	return filepath.Join(baseDir, targetPath)
}
