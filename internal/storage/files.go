// Package storage reads and writes the catalogue's intermediate and published files.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spherical/catalog-extractor/internal/domain"
)

// encodeJSON renders v with two-space indentation and without escaping
// HTML or non-ASCII characters.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile creates the parent directory and writes data to path
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.IOError(fmt.Sprintf("failed to create directory %s", dir), err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return domain.IOError(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := encodeJSON(v)
	if err != nil {
		return domain.IOError(fmt.Sprintf("failed to encode %s", filepath.Base(path)), err)
	}
	return writeFile(path, data)
}

// WriteExtracted writes extracted_data.json
func WriteExtracted(path string, data *domain.ExtractedData) error {
	out := *data
	if out.Products == nil {
		out.Products = []domain.Fragment{}
	}
	if out.Images == nil {
		out.Images = []domain.ImageRef{}
	}
	if out.TextContent == nil {
		out.TextContent = []domain.PageRecord{}
	}
	return writeJSON(path, out)
}

// WriteFragments writes the candidate fragment list read later by the builder
func WriteFragments(path string, fragments []domain.Fragment) error {
	if fragments == nil {
		fragments = []domain.Fragment{}
	}
	return writeJSON(path, fragments)
}

// LoadFragments reads and validates the candidate fragment list.
// A missing file is reported as a missing_input error.
func LoadFragments(path string) ([]domain.Fragment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.MissingInputError(fmt.Sprintf("%s not found, run extraction first", path), err)
		}
		return nil, domain.IOError(fmt.Sprintf("failed to read %s", path), err)
	}

	if err := validateFragments(data); err != nil {
		return nil, domain.ValidationError(fmt.Sprintf("%s is malformed", path), err)
	}

	var fragments []domain.Fragment
	if err := json.Unmarshal(data, &fragments); err != nil {
		return nil, domain.ValidationError(fmt.Sprintf("%s is malformed", path), err)
	}
	return fragments, nil
}
