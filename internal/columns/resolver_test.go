package columns_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtavares/ordemtex/internal/columns"
)

func TestResolveKnownHeaders(t *testing.T) {
	m := columns.Resolve([]string{"Nr.Documento", "Cliente", "Qtd Pedida", "Data Pedida"})

	require.Len(t, m.ByIndex, 4)
	assert.Equal(t, "nrDocumento", m.ByIndex[0].Key)
	assert.Equal(t, "cliente", m.ByIndex[1].Key)
	assert.Equal(t, "qtdPedida", m.ByIndex[2].Key)
	assert.Equal(t, columns.KindNumber, m.ByIndex[2].Kind)
	assert.Equal(t, "dataPedida", m.ByIndex[3].Key)
	assert.Equal(t, columns.KindDate, m.ByIndex[3].Kind)
	assert.Empty(t, m.MissingRequired())
}

func TestResolveIgnoresUnknownAndBlank(t *testing.T) {
	m := columns.Resolve([]string{"Cliente", "", "Coluna Nova", "   "})

	require.Len(t, m.ByIndex, 1)
	assert.Equal(t, "cliente", m.ByIndex[0].Key)
}

func TestResolveTrimsLabels(t *testing.T) {
	m := columns.Resolve([]string{"  Nr.Documento  "})
	assert.Equal(t, "nrDocumento", m.ByIndex[0].Key)
}

func TestResolveIsCaseSensitive(t *testing.T) {
	m := columns.Resolve([]string{"cliente", "CLIENTE"})
	assert.Empty(t, m.ByIndex)
}

// The export carries two columns labeled "Descricao" with different
// meanings. The first occurrence describes the color and the second the
// size, wherever they sit in the row; a third occurrence is ignored.
func TestResolveDescricaoDisambiguation(t *testing.T) {
	m := columns.Resolve([]string{"Cor", "Descricao", "Tam", "Descricao", "EAN", "Descricao"})

	require.Len(t, m.ByIndex, 5)
	assert.Equal(t, "descricaoCor", m.ByIndex[1].Key)
	assert.Equal(t, "descricaoTam", m.ByIndex[3].Key)
	_, mapped := m.ByIndex[5]
	assert.False(t, mapped, "third Descricao occurrence must be ignored")
}

// The occurrence counter is scoped to one Resolve call: a fresh header row
// starts counting from the first occurrence again.
func TestResolveDescricaoCounterPerCall(t *testing.T) {
	_ = columns.Resolve([]string{"Descricao", "Descricao"})
	m := columns.Resolve([]string{"Descricao"})

	assert.Equal(t, "descricaoCor", m.ByIndex[0].Key)
}

func TestMissingRequired(t *testing.T) {
	m := columns.Resolve([]string{"Cliente", "Data Pedida"})
	assert.Equal(t, []string{"nrDocumento", "qtdPedida"}, m.MissingRequired())
}
