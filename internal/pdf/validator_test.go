package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/catalog-extractor/internal/domain"
)

func TestValidator_ValidatePDFPath(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "catalogue.PDF")
	require.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0o644))
	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("hello"), 0o644))

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid pdf with upper-case extension", pdfPath, false},
		{"empty path", "  ", true},
		{"missing file", filepath.Join(dir, "missing.pdf"), true},
		{"directory", dir, true},
		{"wrong extension", txtPath, true},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePDFPath(tt.path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))
		})
	}
}

func TestValidator_ValidateOutputDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	v := NewValidator()
	assert.NoError(t, v.ValidateOutputDir(dir))
	assert.NoError(t, v.ValidateOutputDir(filepath.Join(dir, "new")))
	assert.Error(t, v.ValidateOutputDir(file))
	assert.Error(t, v.ValidateOutputDir(""))
}

func TestBackend_OpenRejectsInvalidPath(t *testing.T) {
	_, err := NewBackend().Open(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.True(t, domain.IsType(err, domain.ErrorTypeValidation))
}
