// =============================================================================
// Ordemtex - Shared Types
// =============================================================================
//
// This package contains the types shared across the ingestion, inference and
// aggregation modules to avoid import cycles. Types defined here are used by:
//   - columns
//   - validation
//   - ingest
//   - status
//   - stats
//   - session
//
// The field names mirror the column layout of the production ERP export
// (Portuguese labels), which keeps validation messages and reports aligned
// with what the planning team sees in the source spreadsheet.
//
// =============================================================================

package types

// =============================================================================
// ORDER RECORD
// =============================================================================

// Order is one line item of a customer order as read from the export.
//
// The export is a flat snapshot, not an event log: an order's position in
// the production chain is never stored directly and has to be inferred from
// which per-sector dates and quantities are populated (see internal/status).
type Order struct {
	// ID is the 1-based source row position, stable for one import.
	ID string

	// Identification.
	NrDocumento string
	Cliente     string
	DataEmissao string
	DataPedida  string
	Item        float64
	PO          string

	// Article.
	CodArtigo    string
	Referencia   string
	Cor          string
	DescricaoCor string
	Tam          string
	DescricaoTam string
	Familia      string
	EAN          string

	// Requested quantity for the line.
	QtdPedida float64

	// Per-sector progress. A zero quantity means nothing is sitting in the
	// sector; an empty date means the sector was not reached yet.
	DataTec          string  // weaving completion date (no quantity of its own)
	FelpoCru         float64 // raw loop
	DataFelpoCru     string
	Tinturaria       float64 // dyeing
	DataTint         string
	ConfeccaoRoupoes float64 // confection: bathrobes
	ConfeccaoFelpos  float64 // confection: towels
	DataConf         string
	EmbAcab          float64 // packaging / finishing
	DataArmExp       string
	StockCx          float64 // stock (boxes)
	DataEnt          string  // shipping date

	// Special process dates. Informational only, never used by the stage
	// inference.
	DataEspecial string
	DataPrinter  string
	DataDebuxo   string
	DataAmostras string
	DataBordados string

	// Invoicing.
	Facturada float64 // invoiced quantity
	EmAberto  float64 // open (uninvoiced, unshipped) quantity
}

// ConfeccaoTotal is the combined confection quantity (bathrobes + towels).
func (o *Order) ConfeccaoTotal() float64 {
	return o.ConfeccaoRoupoes + o.ConfeccaoFelpos
}

// =============================================================================
// SECTORS
// =============================================================================

// SectorID identifies one of the six sequential production sectors.
type SectorID string

const (
	SectorTecelagem  SectorID = "tecelagem"
	SectorFelpoCru   SectorID = "felpoCru"
	SectorTinturaria SectorID = "tinturaria"
	SectorConfeccao  SectorID = "confeccao"
	SectorEmbalagem  SectorID = "embalagem"
	SectorStock      SectorID = "stock"
)

// Sector describes one production sector.
type Sector struct {
	ID        SectorID
	Name      string
	ShortName string
	Order     int
}

// Sectors is the production chain in pipeline order:
// weaving -> raw loop -> dyeing -> confection -> packaging -> stock.
var Sectors = []Sector{
	{ID: SectorTecelagem, Name: "Tecelagem", ShortName: "TEC", Order: 1},
	{ID: SectorFelpoCru, Name: "Felpo Cru", ShortName: "FC", Order: 2},
	{ID: SectorTinturaria, Name: "Tinturaria", ShortName: "TINT", Order: 3},
	{ID: SectorConfeccao, Name: "Confecção", ShortName: "CONF", Order: 4},
	{ID: SectorEmbalagem, Name: "Emb./Acabamento", ShortName: "EMB", Order: 5},
	{ID: SectorStock, Name: "Stock/Expedição", ShortName: "STK", Order: 6},
}

// =============================================================================
// PARSE RESULT
// =============================================================================

// ValidationError is a single validation failure, scoped to one source row
// and field. Row 0 with field "file" marks a fatal, file-level failure.
type ValidationError struct {
	// Row is the 1-based source row number (header row is 1, the first
	// data row is 2). 0 for file-level errors.
	Row int `json:"row"`

	// Field is the canonical field name that failed.
	Field string `json:"field"`

	// Message is a human-readable description, in the language of the
	// source export.
	Message string `json:"message"`

	// Value is the offending raw value, when there is one.
	Value string `json:"value,omitempty"`
}

// ParseResult is the sole output of the ingestion pipeline.
//
// The pipeline never returns a Go error: every failure mode, including an
// unreadable file, is reported through the Errors list so callers can render
// success, partial success and total failure from the same shape.
type ParseResult struct {
	// Success is true when no row produced an error.
	Success bool `json:"success"`

	// Orders are the valid records, in source order.
	Orders []Order `json:"orders"`

	// Errors are all row-level errors plus at most one file-level error.
	Errors []ValidationError `json:"errors"`

	// Warnings are non-blocking notes, e.g. missing expected columns.
	Warnings []string `json:"warnings"`

	// TotalRows is the number of non-blank data rows processed.
	TotalRows int `json:"totalRows"`

	// ValidRows is the number of rows accepted into Orders.
	ValidRows int `json:"validRows"`
}

// =============================================================================
// DERIVED STATE
// =============================================================================

// SectorState is the inferred state of one sector for one order.
type SectorState string

const (
	StatePending       SectorState = "pending"
	StateInProgress    SectorState = "in_progress"
	StateCompleted     SectorState = "completed"
	StateNotApplicable SectorState = "not_applicable"
)

// OrderStatus is the inferred overall status of one order.
type OrderStatus string

const (
	StatusEmProducao OrderStatus = "em_producao"
	StatusConcluida  OrderStatus = "concluida"
	StatusAtrasada   OrderStatus = "atrasada"
	StatusFacturada  OrderStatus = "facturada"
)

// =============================================================================
// AGGREGATES
// =============================================================================

// KPIData is the dashboard KPI block computed over one order collection.
type KPIData struct {
	// TotalEncomendas counts orders with open quantity > 0.
	TotalEncomendas int `json:"totalEncomendas"`

	// EncomendasAtrasadas counts delayed orders.
	EncomendasAtrasadas int `json:"encomendasAtrasadas"`

	// EntregasEstaSemana counts open orders due within the next 7 days.
	EntregasEstaSemana int `json:"entregasEstaSemana"`

	// EntregasEsteMes counts open orders due within the month ahead.
	EntregasEsteMes int `json:"entregasEsteMes"`

	// TaxaCumprimento is the on-time completion rate as a rounded
	// percentage. 100 when there are no completed orders.
	TaxaCumprimento int `json:"taxaCumprimento"`

	// QuantidadeProducao is the total quantity still in production.
	QuantidadeProducao float64 `json:"quantidadeProducao"`

	// QuantidadeFacturada is the total invoiced quantity.
	QuantidadeFacturada float64 `json:"quantidadeFacturada"`

	// QuantidadeEmAberto is the total open quantity.
	QuantidadeEmAberto float64 `json:"quantidadeEmAberto"`
}

// SectorStats is the load currently sitting in one sector.
type SectorStats struct {
	SectorID         SectorID `json:"sectorId"`
	SectorName       string   `json:"sectorName"`
	Quantidade       float64  `json:"quantidade"`
	NumeroEncomendas int      `json:"numeroEncomendas"`
}

// ClientStats is the per-client rollup.
type ClientStats struct {
	Cliente         string  `json:"cliente"`
	TotalEncomendas int     `json:"totalEncomendas"`
	QuantidadeTotal float64 `json:"quantidadeTotal"`
	EmAberto        float64 `json:"emAberto"`
}

// TimelineBar is the geometry of one sector bar inside a day-resolution
// date grid. Indices are inclusive column positions within the grid.
type TimelineBar struct {
	SectorID   SectorID `json:"sectorId"`
	SectorName string   `json:"sectorName"`
	StartIdx   int      `json:"startIdx"`
	EndIdx     int      `json:"endIdx"`
	Quantity   float64  `json:"quantity"`

	// Active marks the sector currently holding material for the order.
	Active bool `json:"active"`
}
