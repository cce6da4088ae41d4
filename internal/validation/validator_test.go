package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtavares/ordemtex/internal/types"
	"github.com/jmtavares/ordemtex/internal/validation"
)

// allPresent marks every canonical field as mapped, the normal case for a
// full export.
func allPresent() map[string]bool {
	present := make(map[string]bool)
	for _, key := range []string{
		"nrDocumento", "cliente", "qtdPedida", "item",
		"felpoCru", "tinturaria", "confeccaoRoupoes", "confeccaoFelpos",
		"embAcab", "stockCx", "facturada", "emAberto",
	} {
		present[key] = true
	}
	return present
}

func validOrder() types.Order {
	return types.Order{
		NrDocumento: "ENC-2024-001",
		Cliente:     "Têxteis do Ave",
		QtdPedida:   100,
		EmAberto:    60,
		Facturada:   40,
	}
}

func TestValidOrderHasNoErrors(t *testing.T) {
	o := validOrder()
	assert.Empty(t, validation.ValidateRow(&o, 2, allPresent()))
}

func TestRequiredFieldsEmpty(t *testing.T) {
	o := validOrder()
	o.NrDocumento = ""
	o.Cliente = ""

	errs := validation.ValidateRow(&o, 2, allPresent())
	require.Len(t, errs, 2)
	assert.Equal(t, "nrDocumento", errs[0].Field)
	assert.Equal(t, "cliente", errs[1].Field)
	for _, e := range errs {
		assert.Equal(t, 2, e.Row)
		assert.Contains(t, e.Message, "obrigatório")
	}
}

func TestRequiredFieldUnmapped(t *testing.T) {
	o := validOrder()
	present := allPresent()
	delete(present, "qtdPedida")

	errs := validation.ValidateRow(&o, 4, present)
	require.Len(t, errs, 1)
	assert.Equal(t, "qtdPedida", errs[0].Field)
}

// A mapped requested-quantity column with an empty cell normalizes to 0,
// which counts as a value: presence is about the column, not the cell.
func TestRequiredQuantityZeroIsPresent(t *testing.T) {
	o := validOrder()
	o.QtdPedida = 0
	o.EmAberto = 0
	o.Facturada = 0

	assert.Empty(t, validation.ValidateRow(&o, 2, allPresent()))
}

func TestNegativeQuantity(t *testing.T) {
	o := validOrder()
	o.FelpoCru = -5

	errs := validation.ValidateRow(&o, 3, allPresent())
	require.Len(t, errs, 1)
	assert.Equal(t, "felpoCru", errs[0].Field)
	assert.Equal(t, "-5", errs[0].Value)
	assert.Contains(t, errs[0].Message, "negativo")
}

func TestNegativeQuantitiesAccumulate(t *testing.T) {
	o := validOrder()
	o.FelpoCru = -5
	o.StockCx = -1
	o.NrDocumento = ""

	errs := validation.ValidateRow(&o, 3, allPresent())
	assert.Len(t, errs, 3)
}

// The open+invoiced tolerance boundary is inclusive: exactly 110% of the
// requested quantity passes, anything above fails.
func TestQuantityToleranceBoundary(t *testing.T) {
	o := validOrder()
	o.QtdPedida = 100
	o.EmAberto = 60
	o.Facturada = 50 // sum 110 == 110%, allowed
	assert.Empty(t, validation.ValidateRow(&o, 2, allPresent()))

	o.EmAberto = 61 // sum 111 > 110%
	errs := validation.ValidateRow(&o, 2, allPresent())
	require.Len(t, errs, 1)
	assert.Equal(t, "emAberto", errs[0].Field)
	assert.Equal(t, "61 + 50 > 100", errs[0].Value)
}

// The consistency rule needs all three quantities defined; with the
// invoiced column missing from the export it is skipped entirely.
func TestQuantityToleranceSkippedWhenUndefined(t *testing.T) {
	o := validOrder()
	o.QtdPedida = 100
	o.EmAberto = 500
	present := allPresent()
	delete(present, "facturada")

	assert.Empty(t, validation.ValidateRow(&o, 2, present))
}
