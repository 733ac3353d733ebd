package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spherical/catalog-extractor/internal/domain"
	"github.com/spherical/catalog-extractor/internal/observability"
)

const largePDFBytes = 100 * 1024 * 1024

// Validator provides input validation for PDF files
type Validator struct {
	logger *observability.Logger
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{logger: observability.DefaultLogger().WithOperation("validate")}
}

// ValidatePDFPath validates that a file path is valid and points to a PDF
func (v *Validator) ValidatePDFPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return domain.ValidationError("file path cannot be empty", nil)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ValidationError(fmt.Sprintf("file does not exist: %s", path), err)
		}
		return domain.ValidationError(fmt.Sprintf("cannot access file: %s", path), err)
	}

	if info.IsDir() {
		return domain.ValidationError(fmt.Sprintf("path is a directory, not a file: %s", path), nil)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".pdf" {
		return domain.ValidationError(fmt.Sprintf("file is not a PDF (has extension %s)", ext), nil)
	}

	if info.Size() > largePDFBytes {
		v.logger.Warn().Str("path", path).Msgf("PDF file is very large (%d MB), extraction may take a while", info.Size()/(1024*1024))
	}

	file, err := os.Open(path)
	if err != nil {
		return domain.ValidationError(fmt.Sprintf("cannot open file: %s", path), err)
	}
	file.Close()

	return nil
}

// ValidateOutputDir checks that dir is either missing or a directory.
// A missing directory is created later by the extractor.
func (v *Validator) ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return domain.ValidationError("output directory cannot be empty", nil)
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return domain.ValidationError(fmt.Sprintf("cannot access output directory: %s", dir), err)
	}
	if !info.IsDir() {
		return domain.ValidationError(fmt.Sprintf("output path is not a directory: %s", dir), nil)
	}
	return nil
}
