package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/spherical/catalog-extractor/internal/domain"
)

// ProductRecord is the columnar form of a product
type ProductRecord struct {
	ID             int64    `parquet:"id"`
	Name           string   `parquet:"name"`
	Price          int64    `parquet:"price"`
	Description    string   `parquet:"description"`
	Category       string   `parquet:"category"`
	Rating         int32    `parquet:"rating"`
	Reviews        int32    `parquet:"reviews"`
	Images         []string `parquet:"images,list"`
	InStock        bool     `parquet:"in_stock"`
	Weight         string   `parquet:"weight"`
	Dimensions     string   `parquet:"dimensions"`
	Material       string   `parquet:"material"`
	Badge          *string  `parquet:"badge,optional"`
	DateAdded      string   `parquet:"date_added"`
	Specifications string   `parquet:"specifications"`
}

func toRecord(p domain.Product) ProductRecord {
	return ProductRecord{
		ID:             int64(p.ID),
		Name:           p.Name,
		Price:          int64(p.Price),
		Description:    p.Description,
		Category:       string(p.Category),
		Rating:         int32(p.Rating),
		Reviews:        int32(p.Reviews),
		Images:         p.Images,
		InStock:        p.InStock,
		Weight:         p.Weight,
		Dimensions:     p.Dimensions,
		Material:       p.Material,
		Badge:          p.Badge,
		DateAdded:      p.DateAdded,
		Specifications: p.Specifications,
	}
}

// WriteProductsParquet writes one row per product
func WriteProductsParquet(path string, products []domain.Product) error {
	rows := make([]ProductRecord, len(products))
	for i, p := range products {
		rows[i] = toRecord(p)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.IOError(fmt.Sprintf("failed to create directory for %s", path), err)
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return domain.IOError(fmt.Sprintf("parquet write %s", path), err)
	}
	return nil
}

// ReadProductsParquet reads back rows written by WriteProductsParquet
func ReadProductsParquet(path string) ([]ProductRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[ProductRecord](pf)
	defer reader.Close()

	records := make([]ProductRecord, pf.NumRows())
	n, err := reader.Read(records)
	if err != nil && n < len(records) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return records[:n], nil
}
