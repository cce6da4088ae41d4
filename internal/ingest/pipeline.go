// =============================================================================
// Ordemtex - Ingestion Pipeline
// =============================================================================
//
// This module orchestrates one import:
//
//   1. Decode the binary container into a grid of text cells (workbook.go).
//   2. Resolve the header row to canonical fields (internal/columns).
//   3. For every data row: normalize each mapped cell per its field kind,
//      validate the candidate record, and accumulate it into the valid set
//      or its errors into the error list.
//
// ERROR HANDLING:
//   The public contract never returns a Go error. The only fatal condition
//   is the whole-file decode step; it surfaces as a single file-level
//   ValidationError (row 0, field "file") with zero orders. A malformed row
//   only ever excludes itself — every other row keeps processing. Truly
//   unexpected decode faults are recovered and converted to the same
//   file-level shape.
//
// =============================================================================

package ingest

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jmtavares/ordemtex/internal/columns"
	"github.com/jmtavares/ordemtex/internal/normalize"
	"github.com/jmtavares/ordemtex/internal/types"
	"github.com/jmtavares/ordemtex/internal/validation"
)

// Pipeline runs imports. It is stateless across calls: parsing the same
// bytes twice yields identical results.
type Pipeline struct {
	log zerolog.Logger
}

// New creates a Pipeline that logs diagnostics to the given logger.
func New(log zerolog.Logger) *Pipeline {
	return &Pipeline{log: log}
}

// Parse decodes and ingests one export.
//
// The reader is consumed to the end. The returned result is never nil and
// the method never panics: all failures are reported as data.
func (p *Pipeline) Parse(r io.Reader) (result *types.ParseResult) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error().Interface("panic", rec).Msg("import aborted by decode fault")
			result = fileFailure(fmt.Sprintf("Erro ao processar ficheiro: %v", rec))
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return fileFailure("Erro ao ler o ficheiro")
	}

	grid, err := decodeGrid(data)
	if err != nil {
		return fileFailure(fmt.Sprintf("Erro ao processar ficheiro: %v", err))
	}

	if len(grid) < 2 {
		return fileFailure("Ficheiro vazio ou sem dados válidos")
	}

	mapping := columns.Resolve(grid[0])
	p.log.Debug().
		Int("columns", len(mapping.ByIndex)).
		Int("rows", len(grid)-1).
		Msg("header resolved")

	result = &types.ParseResult{}
	if missing := mapping.MissingRequired(); len(missing) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Colunas obrigatórias não encontradas: %s", strings.Join(missing, ", ")))
	}

	for i := 1; i < len(grid); i++ {
		row := grid[i]
		if rowEmpty(row) {
			continue
		}
		result.TotalRows++

		order := buildOrder(row, mapping, i)
		rowErrs := validation.ValidateRow(&order, i+1, mapping.Present)
		if len(rowErrs) == 0 {
			result.Orders = append(result.Orders, order)
		} else {
			result.Errors = append(result.Errors, rowErrs...)
		}
	}

	result.ValidRows = len(result.Orders)
	result.Success = len(result.Errors) == 0

	p.log.Info().
		Int("total", result.TotalRows).
		Int("valid", result.ValidRows).
		Int("errors", len(result.Errors)).
		Msg("import finished")

	return result
}

// ParseFile opens and ingests an export from disk. An unreadable path is
// reported through the result like any other file-level failure.
func (p *Pipeline) ParseFile(path string) *types.ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return fileFailure("Erro ao ler o ficheiro")
	}
	defer f.Close()
	return p.Parse(f)
}

// buildOrder assembles a candidate record from one data row. The record id
// is the row's 1-based position among the data rows; validation errors use
// the spreadsheet row number (one higher, counting the header).
func buildOrder(row []string, mapping columns.Mapping, dataRow int) types.Order {
	order := types.Order{ID: strconv.Itoa(dataRow)}
	for idx, field := range mapping.ByIndex {
		applyField(&order, field, cellAt(row, idx))
	}
	return order
}

// applyField routes a raw cell through the normalizer its field kind
// declares and stores the value on the record.
func applyField(o *types.Order, f columns.Field, raw string) {
	switch f.Kind {
	case columns.KindNumber:
		setNumber(o, f.Key, normalize.Number(raw))
	case columns.KindDate:
		setDate(o, f.Key, normalize.Date(raw))
	default:
		setText(o, f.Key, normalize.Text(raw))
	}
}

func setNumber(o *types.Order, key string, v float64) {
	switch key {
	case "item":
		o.Item = v
	case "qtdPedida":
		o.QtdPedida = v
	case "felpoCru":
		o.FelpoCru = v
	case "tinturaria":
		o.Tinturaria = v
	case "confeccaoRoupoes":
		o.ConfeccaoRoupoes = v
	case "confeccaoFelpos":
		o.ConfeccaoFelpos = v
	case "embAcab":
		o.EmbAcab = v
	case "stockCx":
		o.StockCx = v
	case "facturada":
		o.Facturada = v
	case "emAberto":
		o.EmAberto = v
	}
}

func setDate(o *types.Order, key string, v string) {
	switch key {
	case "dataEmissao":
		o.DataEmissao = v
	case "dataPedida":
		o.DataPedida = v
	case "dataTec":
		o.DataTec = v
	case "dataFelpoCru":
		o.DataFelpoCru = v
	case "dataTint":
		o.DataTint = v
	case "dataConf":
		o.DataConf = v
	case "dataArmExp":
		o.DataArmExp = v
	case "dataEnt":
		o.DataEnt = v
	case "dataEspecial":
		o.DataEspecial = v
	case "dataPrinter":
		o.DataPrinter = v
	case "dataDebuxo":
		o.DataDebuxo = v
	case "dataAmostras":
		o.DataAmostras = v
	case "dataBordados":
		o.DataBordados = v
	}
}

func setText(o *types.Order, key string, v string) {
	switch key {
	case "nrDocumento":
		o.NrDocumento = v
	case "cliente":
		o.Cliente = v
	case "po":
		o.PO = v
	case "codArtigo":
		o.CodArtigo = v
	case "referencia":
		o.Referencia = v
	case "cor":
		o.Cor = v
	case "descricaoCor":
		o.DescricaoCor = v
	case "tam":
		o.Tam = v
	case "descricaoTam":
		o.DescricaoTam = v
	case "familia":
		o.Familia = v
	case "ean":
		o.EAN = v
	}
}

// cellAt returns the cell at idx, "" when the row is shorter. Decoders trim
// trailing empty cells, so short rows are routine.
func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

// rowEmpty reports whether every cell of a row is blank.
func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// fileFailure builds the fatal, file-level result shape: one error tagged
// field "file" at row 0, zero orders.
func fileFailure(message string) *types.ParseResult {
	return &types.ParseResult{
		Success: false,
		Errors: []types.ValidationError{
			{Row: 0, Field: "file", Message: message},
		},
	}
}
