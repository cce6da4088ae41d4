// =============================================================================
// Ordemtex - Upload File Gate
// =============================================================================
//
// Pre-parse validation of an upload, independent of the pipeline: a file
// that fails here is rejected before a single byte is decoded. The gate
// only looks at the name and size; content sniffing is the decoder's job.
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// validExtensions are the recognized legacy tabular container extensions.
var validExtensions = []string{".xls", ".xlsx"}

// DefaultMaxFileSize is the upload size ceiling: 50 MB.
const DefaultMaxFileSize = 50 * 1024 * 1024

// FileValidation is the structured outcome of the gate.
type FileValidation struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ValidateUpload gates an upload on extension and size. The extension
// check is case-insensitive; size is in bytes.
func ValidateUpload(fileName string, size int64, maxSize int64) FileValidation {
	ext := strings.ToLower(filepath.Ext(fileName))

	ok := false
	for _, valid := range validExtensions {
		if ext == valid {
			ok = true
			break
		}
	}
	if !ok {
		return FileValidation{
			Valid: false,
			Error: fmt.Sprintf("Formato de ficheiro inválido. Use %s", strings.Join(validExtensions, " ou ")),
		}
	}

	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if size > maxSize {
		return FileValidation{
			Valid: false,
			Error: fmt.Sprintf("Ficheiro demasiado grande. Tamanho máximo: %dMB", maxSize/(1024*1024)),
		}
	}

	return FileValidation{Valid: true}
}

// ValidateUploadPath gates a file on disk, reading its size from the
// filesystem.
func ValidateUploadPath(path string, maxSize int64) FileValidation {
	info, err := os.Stat(path)
	if err != nil {
		return FileValidation{Valid: false, Error: "Erro ao ler o ficheiro"}
	}
	return ValidateUpload(filepath.Base(path), info.Size(), maxSize)
}
