package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spherical/catalog-extractor/internal/domain"
)

const productsSheet = "Products"

var xlsxHeaders = []string{
	"ID",
	"Name",
	"Price",
	"Category",
	"Weight",
	"Dimensions",
	"Material",
	"Badge",
	"Date Added",
	"Images",
	"Specifications",
	"Description",
}

// WriteProductsXLSX writes the catalogue as a single-sheet workbook
func WriteProductsXLSX(path string, products []domain.Product) error {
	f := excelize.NewFile()
	defer f.Close()

	if index, _ := f.GetSheetIndex(productsSheet); index == -1 {
		if _, err := f.NewSheet(productsSheet); err != nil {
			return domain.IOError("failed to create products sheet", err)
		}
	}
	_ = f.DeleteSheet("Sheet1")
	activeIndex, _ := f.GetSheetIndex(productsSheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(productsSheet, cell, h)
	}

	for i, p := range products {
		row := i + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(productsSheet, cell, v)
		}

		write(1, p.ID)
		write(2, p.Name)
		write(3, p.Price)
		write(4, string(p.Category))
		write(5, p.Weight)
		write(6, p.Dimensions)
		write(7, p.Material)
		write(8, p.BadgeValue())
		write(9, p.DateAdded)
		write(10, strings.Join(p.Images, ", "))
		write(11, p.Specifications)
		write(12, p.Description)
	}

	_ = f.SetColWidth(productsSheet, "A", "A", 6)
	_ = f.SetColWidth(productsSheet, "B", "B", 36)
	_ = f.SetColWidth(productsSheet, "C", "I", 14)
	_ = f.SetColWidth(productsSheet, "J", "J", 48)
	_ = f.SetColWidth(productsSheet, "K", "L", 60)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.IOError(fmt.Sprintf("failed to create directory for %s", path), err)
	}
	if err := f.SaveAs(path); err != nil {
		return domain.IOError(fmt.Sprintf("xlsx write %s", path), err)
	}
	return nil
}
