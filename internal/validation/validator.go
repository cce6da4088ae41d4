// =============================================================================
// Ordemtex - Row Validator
// =============================================================================
//
// This module checks a candidate order record against the import rules:
//   1. Required fields (document number, client, requested quantity) must
//      be present and non-empty.
//   2. Every sector/aggregate quantity must be non-negative.
//   3. Open + invoiced quantity must not exceed the requested quantity by
//      more than the rounding/returns tolerance.
//
// ERROR HANDLING:
//   - Errors are collected, not thrown: all three rules run for every row
//     and each violation produces its own ValidationError.
//   - A row with at least one error is excluded from the valid set by the
//     pipeline; the errors themselves are preserved for reporting.
//   - Messages are in Portuguese, matching the language of the export the
//     planning team works with.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"

	"github.com/jmtavares/ordemtex/internal/types"
)

// quantityTolerance allows open + invoiced to exceed the requested quantity
// by 10%, absorbing rounding differences and returns. Business rule carried
// over literally from the planning sheet; deliberately not configurable.
const quantityTolerance = 1.1

// numericField pairs a canonical field name with its accessor, in the
// order violations should be reported.
type numericField struct {
	key string
	get func(*types.Order) float64
}

var numericFields = []numericField{
	{"item", func(o *types.Order) float64 { return o.Item }},
	{"qtdPedida", func(o *types.Order) float64 { return o.QtdPedida }},
	{"felpoCru", func(o *types.Order) float64 { return o.FelpoCru }},
	{"tinturaria", func(o *types.Order) float64 { return o.Tinturaria }},
	{"confeccaoRoupoes", func(o *types.Order) float64 { return o.ConfeccaoRoupoes }},
	{"confeccaoFelpos", func(o *types.Order) float64 { return o.ConfeccaoFelpos }},
	{"embAcab", func(o *types.Order) float64 { return o.EmbAcab }},
	{"stockCx", func(o *types.Order) float64 { return o.StockCx }},
	{"facturada", func(o *types.Order) float64 { return o.Facturada }},
	{"emAberto", func(o *types.Order) float64 { return o.EmAberto }},
}

// ValidateRow validates one candidate record.
//
// PARAMETERS:
//   - order: the candidate record built by the pipeline.
//   - rowNumber: the 1-based source row number, used in every error.
//   - present: the set of canonical fields the header mapping produced.
//     A field absent from the header is "undefined": required checks fail
//     for it and the consistency rule is skipped when any of its three
//     fields is undefined, mirroring how the export behaves when a report
//     version drops a column.
//
// RETURNS:
//   - All violations for the row, possibly none. Rules never short-circuit.
func ValidateRow(order *types.Order, rowNumber int, present map[string]bool) []types.ValidationError {
	var errs []types.ValidationError

	// Rule 1: required fields.
	for _, key := range requiredChecks {
		if !present[key.field] || key.empty(order) {
			errs = append(errs, types.ValidationError{
				Row:     rowNumber,
				Field:   key.field,
				Message: fmt.Sprintf("Campo obrigatório %q está vazio", key.field),
			})
		}
	}

	// Rule 2: quantities cannot be negative.
	for _, f := range numericFields {
		if !present[f.key] {
			continue
		}
		if v := f.get(order); v < 0 {
			errs = append(errs, types.ValidationError{
				Row:     rowNumber,
				Field:   f.key,
				Message: fmt.Sprintf("Campo %q não pode ser negativo", f.key),
				Value:   formatQuantity(v),
			})
		}
	}

	// Rule 3: open + invoiced must stay within tolerance of the requested
	// quantity. The boundary is inclusive: exactly 110% passes.
	if present["qtdPedida"] && present["emAberto"] && present["facturada"] {
		total := order.EmAberto + order.Facturada
		if total > order.QtdPedida*quantityTolerance {
			errs = append(errs, types.ValidationError{
				Row:     rowNumber,
				Field:   "emAberto",
				Message: `Soma de "Em Aberto" + "Facturada" excede "Qtd Pedida"`,
				Value: fmt.Sprintf("%s + %s > %s",
					formatQuantity(order.EmAberto),
					formatQuantity(order.Facturada),
					formatQuantity(order.QtdPedida)),
			})
		}
	}

	return errs
}

// requiredCheck describes the emptiness test for one required field. The
// requested quantity is numeric: once its column is mapped, an empty cell
// normalizes to 0, which counts as a value.
type requiredCheck struct {
	field string
	empty func(*types.Order) bool
}

var requiredChecks = []requiredCheck{
	{"nrDocumento", func(o *types.Order) bool { return o.NrDocumento == "" }},
	{"cliente", func(o *types.Order) bool { return o.Cliente == "" }},
	{"qtdPedida", func(o *types.Order) bool { return false }},
}

// formatQuantity renders a quantity the way the export shows it: without a
// decimal part when the value is integral.
func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
