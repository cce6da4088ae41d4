package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtavares/ordemtex/pkg/utils"
)

func TestValidateUploadExtensions(t *testing.T) {
	tests := []struct {
		fileName string
		valid    bool
	}{
		{"encomendas.xls", true},
		{"encomendas.xlsx", true},
		{"ENCOMENDAS.XLS", true},
		{"Encomendas.Xlsx", true},
		{"encomendas.csv", false},
		{"encomendas.xlsm", false},
		{"encomendas", false},
		{"encomendas.xls.pdf", false},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			got := utils.ValidateUpload(tt.fileName, 1024, utils.DefaultMaxFileSize)
			assert.Equal(t, tt.valid, got.Valid)
			if !tt.valid {
				assert.Contains(t, got.Error, "Formato de ficheiro inválido")
			}
		})
	}
}

func TestValidateUploadSizeBoundary(t *testing.T) {
	// The ceiling is inclusive.
	got := utils.ValidateUpload("encomendas.xls", utils.DefaultMaxFileSize, utils.DefaultMaxFileSize)
	assert.True(t, got.Valid)

	got = utils.ValidateUpload("encomendas.xls", utils.DefaultMaxFileSize+1, utils.DefaultMaxFileSize)
	assert.False(t, got.Valid)
	assert.Contains(t, got.Error, "Ficheiro demasiado grande")
	assert.Contains(t, got.Error, "50MB")
}

func TestValidateUploadZeroMaxUsesDefault(t *testing.T) {
	got := utils.ValidateUpload("encomendas.xls", 10*1024*1024, 0)
	assert.True(t, got.Valid)
}

func TestValidateUploadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xls")
	require.NoError(t, os.WriteFile(path, []byte("dados"), 0o644))

	got := utils.ValidateUploadPath(path, utils.DefaultMaxFileSize)
	assert.True(t, got.Valid)

	got = utils.ValidateUploadPath(filepath.Join(t.TempDir(), "missing.xls"), utils.DefaultMaxFileSize)
	assert.False(t, got.Valid)
	assert.Equal(t, "Erro ao ler o ficheiro", got.Error)
}
