// =============================================================================
// Ordemtex - Workbook Decoder
// =============================================================================
//
// This module turns the raw bytes of an uploaded export into a rectangular
// grid of text cells. Three container shapes exist in the wild:
//
//   1. .xlsx - a ZIP-based OOXML workbook. Decoded with excelize.
//   2. .xls  - the legacy OLE2/BIFF workbook. Decoded with extrame/xls,
//              telling it the source charset explicitly: the ERP writes
//              ISO-8859-1 and client/article names carry accented
//              characters that a UTF-8-only decode would mangle.
//   3. "fake xls" - delimiter-separated Latin-1 text wearing a spreadsheet
//              extension. Old ERP report jobs do this. Decoded as CSV
//              through an ISO-8859-1 transform reader.
//
// The container is identified by its magic bytes, never by the file name:
// the extension already passed the upload gate and says nothing reliable
// about the actual content.
//
// Only the first sheet is read. Empty cells become "", never a gap, so the
// pipeline can index any column safely.
//
// =============================================================================

package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// legacyCharset is the cell text encoding of the legacy containers.
var legacyCharsetName = "iso-8859-1"

// Container magic numbers.
var (
	zipMagic  = []byte{0x50, 0x4B, 0x03, 0x04}                         // "PK\x03\x04"
	ole2Magic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1} // OLE2 compound file
)

// decodeGrid decodes export bytes into a grid of text cells.
func decodeGrid(data []byte) ([][]string, error) {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return decodeXLSX(data)
	case bytes.HasPrefix(data, ole2Magic):
		return decodeXLS(data)
	default:
		return decodeLatin1CSV(data)
	}
}

// decodeXLSX reads the first sheet of an OOXML workbook.
func decodeXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("leitura do livro xlsx falhou: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("o livro não tem folhas")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("leitura das linhas falhou: %w", err)
	}

	return rows, nil
}

// decodeXLS reads the first sheet of a legacy BIFF workbook.
func decodeXLS(data []byte) ([][]string, error) {
	wb, err := xls.OpenReader(bytes.NewReader(data), legacyCharsetName)
	if err != nil {
		return nil, fmt.Errorf("leitura do livro xls falhou: %w", err)
	}

	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, fmt.Errorf("o livro não tem folhas")
	}

	grid := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, nil)
			continue
		}

		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		grid = append(grid, cells)
	}

	return grid, nil
}

// decodeLatin1CSV reads delimiter-separated Latin-1 text. The delimiter is
// sniffed from the header line; report jobs emit either ";" or ",".
func decodeLatin1CSV(data []byte) ([][]string, error) {
	decoded, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
	if err != nil {
		return nil, fmt.Errorf("descodificação ISO-8859-1 falhou: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(decoded)))
	reader.Comma = sniffDelimiter(decoded)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leitura do texto tabular falhou: %w", err)
	}

	return rows, nil
}

// sniffDelimiter picks the delimiter with the most occurrences in the first
// line. Comma wins ties, matching the most common report job output.
func sniffDelimiter(data []byte) rune {
	line := string(data)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}

	best, bestCount := ',', strings.Count(line, ",")
	for _, cand := range []rune{';', '\t'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}
