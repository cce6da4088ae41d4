package ingest_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jmtavares/ordemtex/internal/ingest"
	"github.com/jmtavares/ordemtex/internal/status"
	"github.com/jmtavares/ordemtex/internal/types"
)

func newPipeline() *ingest.Pipeline {
	return ingest.New(zerolog.Nop())
}

// =============================================================================
// END TO END
// =============================================================================

func TestParseEndToEnd(t *testing.T) {
	csvData := strings.Join([]string{
		"Nr.Documento;Cliente;Qtd Pedida;Em Aberto;Facturada",
		"D1;ClientA;100;0;100",
		"D2;ClientB;50;50;0",
		";;;;", // blank line in the middle of the export
	}, "\n")

	res := newPipeline().Parse(strings.NewReader(csvData))

	require.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 2, res.TotalRows)
	assert.Equal(t, 2, res.ValidRows)
	require.Len(t, res.Orders, 2)

	first := res.Orders[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, "D1", first.NrDocumento)
	assert.Equal(t, "ClientA", first.Cliente)
	assert.Equal(t, 100.0, first.QtdPedida)
	assert.Equal(t, 0.0, first.EmAberto)
	assert.Equal(t, 100.0, first.Facturada)

	second := res.Orders[1]
	assert.Equal(t, "2", second.ID)
	assert.Equal(t, "D2", second.NrDocumento)
	assert.Equal(t, 50.0, second.EmAberto)

	// Derived status: fully invoiced vs still open without a requested date.
	now := time.Now()
	assert.Equal(t, types.StatusConcluida, status.OrderStatus(&first, now))
	assert.Equal(t, types.StatusEmProducao, status.OrderStatus(&second, now))
}

func TestParseIsIdempotent(t *testing.T) {
	csvData := "Nr.Documento,Cliente,Qtd Pedida\nD1,ClientA,100\n"

	p := newPipeline()
	first := p.Parse(strings.NewReader(csvData))
	second := p.Parse(strings.NewReader(csvData))

	require.Equal(t, first, second)
}

// =============================================================================
// LEGACY TEXT CONTAINERS
// =============================================================================

func TestParseLatin1Accents(t *testing.T) {
	// A report job export: Latin-1 text behind a spreadsheet extension.
	utf8Data := strings.Join([]string{
		"Nr.Documento;Cliente;Referencia;Qtd Pedida",
		"D1;Confecções Têxteis Lda;ROUPÃO-01;25",
	}, "\n")
	latin1, _, err := transform.Bytes(charmap.ISO8859_1.NewEncoder(), []byte(utf8Data))
	require.NoError(t, err)

	res := newPipeline().Parse(bytes.NewReader(latin1))

	require.True(t, res.Success)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, "Confecções Têxteis Lda", res.Orders[0].Cliente)
	assert.Equal(t, "ROUPÃO-01", res.Orders[0].Referencia)
}

func TestParseSniffsCommaDelimiter(t *testing.T) {
	csvData := "Nr.Documento,Cliente,Qtd Pedida\nD1,ClientA,10\n"

	res := newPipeline().Parse(strings.NewReader(csvData))

	require.True(t, res.Success)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, "ClientA", res.Orders[0].Cliente)
}

// =============================================================================
// XLSX CONTAINER
// =============================================================================

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1",
		&[]interface{}{"Nr.Documento", "Cliente", "Qtd Pedida", "Em Aberto", "Data Pedida"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2",
		&[]interface{}{"D1", "ClientA", 100, 40, 44927}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res := newPipeline().Parse(bytes.NewReader(buf.Bytes()))

	require.True(t, res.Success)
	require.Len(t, res.Orders, 1)
	assert.Equal(t, "D1", res.Orders[0].NrDocumento)
	assert.Equal(t, 100.0, res.Orders[0].QtdPedida)
	assert.Equal(t, 40.0, res.Orders[0].EmAberto)
	// The requested date arrives as an Excel serial and is normalized.
	assert.Equal(t, "01/01/2023", res.Orders[0].DataPedida)
}

// =============================================================================
// ROW-LEVEL FAILURES
// =============================================================================

func TestParseInvalidRowExcludesOnlyItself(t *testing.T) {
	csvData := strings.Join([]string{
		"Nr.Documento;Cliente;Qtd Pedida;Em Aberto;Facturada",
		"D1;ClientA;100;50;0",
		"D2;;80;20;0",         // missing client
		"D3;ClientC;100;61;50", // 61 + 50 > 110
		"D4;ClientD;30;30;0",
	}, "\n")

	res := newPipeline().Parse(strings.NewReader(csvData))

	assert.False(t, res.Success)
	assert.Equal(t, 4, res.TotalRows)
	assert.Equal(t, 2, res.ValidRows)
	require.Len(t, res.Orders, 2)
	assert.Equal(t, "D1", res.Orders[0].NrDocumento)
	assert.Equal(t, "D4", res.Orders[1].NrDocumento)

	// Errors carry the spreadsheet row number, counting the header.
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Equal(t, "cliente", res.Errors[0].Field)
	assert.Equal(t, 4, res.Errors[1].Row)
	assert.Equal(t, "emAberto", res.Errors[1].Field)
	assert.Equal(t, "61 + 50 > 100", res.Errors[1].Value)
}

func TestParseMissingRequiredColumnsWarns(t *testing.T) {
	csvData := "Nr.Documento;Referencia\nD1;REF-A\n"

	res := newPipeline().Parse(strings.NewReader(csvData))

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "Colunas obrigatórias não encontradas")
	assert.Contains(t, res.Warnings[0], "cliente")
	assert.Contains(t, res.Warnings[0], "qtdPedida")
	assert.NotContains(t, res.Warnings[0], "nrDocumento")
}

// =============================================================================
// FILE-LEVEL FAILURES
// =============================================================================

func TestParseHeaderOnlyIsFatal(t *testing.T) {
	res := newPipeline().Parse(strings.NewReader("Nr.Documento;Cliente;Qtd Pedida\n"))

	assert.False(t, res.Success)
	assert.Empty(t, res.Orders)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 0, res.Errors[0].Row)
	assert.Equal(t, "file", res.Errors[0].Field)
	assert.Equal(t, "Ficheiro vazio ou sem dados válidos", res.Errors[0].Message)
}

func TestParseCorruptWorkbookIsFatal(t *testing.T) {
	// ZIP magic followed by garbage: routed to the xlsx decoder, which
	// must fail without taking the pipeline down.
	corrupt := append([]byte("PK\x03\x04"), []byte("not a workbook")...)

	res := newPipeline().Parse(bytes.NewReader(corrupt))

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "file", res.Errors[0].Field)
	assert.Contains(t, res.Errors[0].Message, "Erro ao processar ficheiro")
}

func TestParseReaderFailureIsFatal(t *testing.T) {
	res := newPipeline().Parse(iotest.ErrReader(errors.New("disco cheio")))

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Erro ao ler o ficheiro", res.Errors[0].Message)
}

func TestParseFileMissingPath(t *testing.T) {
	res := newPipeline().ParseFile("/nonexistent/export.xls")

	assert.False(t, res.Success)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "Erro ao ler o ficheiro", res.Errors[0].Message)
}
