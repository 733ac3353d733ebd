package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Catalog.MaxProducts)
	assert.Equal(t, 2, cfg.Catalog.AssociationWindow)
	assert.Equal(t, 999, cfg.Catalog.PriceFloor)
	assert.Equal(t, 500, cfg.Catalog.DefaultWeightGrams)
	assert.Equal(t, 40, cfg.Catalog.LastImagePage)
	assert.Equal(t, 14, cfg.Catalog.ImagesPerPage)
	assert.Equal(t, 3, cfg.Catalog.MaxProductImages)
	assert.Equal(t, "final_products.json", cfg.Output.ProductsFile)
	assert.Equal(t, filepath.Join("js", "pdf_products.js"), cfg.Output.JSModuleFile)
	assert.Equal(t, "pdfProducts", cfg.Output.JSConstName)
	assert.Equal(t, "", cfg.Database.Driver)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
extraction:
  output_dir: /srv/catalog
catalog:
  max_products: 10
  association_window: 3
output:
  xlsx_file: products.xlsx
database:
  driver: sqlite
  dsn: /srv/catalog/products.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Catalog.MaxProducts)
	assert.Equal(t, 3, cfg.Catalog.AssociationWindow)
	assert.Equal(t, 999, cfg.Catalog.PriceFloor, "unset keys keep their defaults")
	assert.Equal(t, "/srv/catalog/images", cfg.ImagesPath())
	assert.Equal(t, "/srv/catalog/products_data.json", cfg.FragmentsPath())
	assert.Equal(t, "/srv/catalog/products.xlsx", cfg.OutputPath(cfg.Output.XLSXFile))
	assert.Equal(t, "", cfg.OutputPath(cfg.Output.ParquetFile))
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CATALOG_OUTPUT_DIR", "/tmp/out")
	t.Setenv("CATALOG_MAX_PRODUCTS", "5")
	t.Setenv("CATALOG_DB_DRIVER", "SQLITE")
	t.Setenv("CATALOG_DB_DSN", "/tmp/out/catalog.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out", cfg.Extraction.OutputDir)
	assert.Equal(t, 5, cfg.Catalog.MaxProducts)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/out/catalog.db", cfg.Database.DSN)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_InvalidEnvNumber(t *testing.T) {
	t.Setenv("CATALOG_MAX_PRODUCTS", "thirty")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero cap", func(c *Config) { c.Catalog.MaxProducts = 0 }, true},
		{"negative window", func(c *Config) { c.Catalog.AssociationWindow = -1 }, true},
		{"negative pages before", func(c *Config) { c.Catalog.ImagePagesBefore = -1 }, true},
		{"negative pages after", func(c *Config) { c.Catalog.ImagePagesAfter = -1 }, true},
		{"zero pages before", func(c *Config) { c.Catalog.ImagePagesBefore = 0 }, false},
		{"floor not x99", func(c *Config) { c.Catalog.PriceFloor = 1000 }, true},
		{"floor 499", func(c *Config) { c.Catalog.PriceFloor = 499 }, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql"; c.Database.DSN = "x" }, true},
		{"driver without dsn", func(c *Config) { c.Database.Driver = "postgres" }, true},
		{"postgres", func(c *Config) { c.Database.Driver = "postgres"; c.Database.DSN = "postgres://localhost/catalog" }, false},
		{"missing const name", func(c *Config) { c.Output.JSConstName = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveRelativePath(t *testing.T) {
	assert.Equal(t, "/abs/file.json", ResolveRelativePath("/base", "/abs/file.json"))
	assert.Equal(t, filepath.Join("/base", "file.json"), ResolveRelativePath("/base", "file.json"))
	assert.Equal(t, "file.json", ResolveRelativePath("", "file.json"))
}
