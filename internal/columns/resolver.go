// =============================================================================
// Ordemtex - Column Resolver
// =============================================================================
//
// This module maps the header row of an export to the canonical order
// fields. The export's column order varies between ERP report versions, so
// nothing may rely on positions; resolution is by exact header label.
//
// KNOWN HEADER LAYOUT (labels exactly as the ERP emits them):
//
//   | Label            | Field          | Kind   |
//   |------------------|----------------|--------|
//   | Nr.Documento     | nrDocumento    | text   |
//   | Cliente          | cliente        | text   |
//   | Data Emissão     | dataEmissao    | date   |
//   | Data Pedida      | dataPedida     | date   |
//   | Item             | item           | number |
//   | PO               | po             | text   |
//   | Cod.Artigo       | codArtigo      | text   |
//   | Referencia       | referencia     | text   |
//   | Cor              | cor            | text   |
//   | Descricao (1st)  | descricaoCor   | text   |
//   | Tam              | tam            | text   |
//   | Descricao (2nd)  | descricaoTam   | text   |
//   | Familia          | familia        | text   |
//   | EAN              | ean            | text   |
//   | Qtd Pedida       | qtdPedida      | number |
//   | ... per-sector quantity and date labels, see the dictionary below.
//
// The duplicated "Descricao" label is a quirk of the source layout: the
// first occurrence describes the color, the second the size. Disambiguation
// is positional (an occurrence counter scoped to one Resolve call), never
// content based.
//
// =============================================================================

package columns

import "strings"

// =============================================================================
// CANONICAL FIELDS
// =============================================================================

// Kind selects which normalizer a field's cells are routed through.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

// Field is one canonical order field.
type Field struct {
	// Key is the canonical field name, used in validation errors.
	Key string

	// Kind selects the downstream normalizer.
	Kind Kind
}

// Required is the set of canonical fields a usable export must carry.
var Required = []string{"nrDocumento", "cliente", "qtdPedida"}

// dictionary maps the exact, trimmed header label to its canonical field.
// "Descricao" is intentionally absent: it is resolved positionally.
var dictionary = map[string]Field{
	"Nr.Documento":      {Key: "nrDocumento", Kind: KindText},
	"Cliente":           {Key: "cliente", Kind: KindText},
	"Data Emissão":      {Key: "dataEmissao", Kind: KindDate},
	"Data Pedida":       {Key: "dataPedida", Kind: KindDate},
	"Item":              {Key: "item", Kind: KindNumber},
	"PO":                {Key: "po", Kind: KindText},
	"Cod.Artigo":        {Key: "codArtigo", Kind: KindText},
	"Referencia":        {Key: "referencia", Kind: KindText},
	"Cor":               {Key: "cor", Kind: KindText},
	"Tam":               {Key: "tam", Kind: KindText},
	"Familia":           {Key: "familia", Kind: KindText},
	"EAN":               {Key: "ean", Kind: KindText},
	"Qtd Pedida":        {Key: "qtdPedida", Kind: KindNumber},
	"Data Tec.":         {Key: "dataTec", Kind: KindDate},
	"Felpo Cru":         {Key: "felpoCru", Kind: KindNumber},
	"Data F.Cru":        {Key: "dataFelpoCru", Kind: KindDate},
	"Tinturaria":        {Key: "tinturaria", Kind: KindNumber},
	"Data Tint.":        {Key: "dataTint", Kind: KindDate},
	"Confeccao Roupoes": {Key: "confeccaoRoupoes", Kind: KindNumber},
	"Confeccao Felpos":  {Key: "confeccaoFelpos", Kind: KindNumber},
	"Data Conf.":        {Key: "dataConf", Kind: KindDate},
	"Emb./Acab.":        {Key: "embAcab", Kind: KindNumber},
	"Data Arm. Exp.":    {Key: "dataArmExp", Kind: KindDate},
	"Stock Cx.":         {Key: "stockCx", Kind: KindNumber},
	"Data Ent.":         {Key: "dataEnt", Kind: KindDate},
	"Data Especial.":    {Key: "dataEspecial", Kind: KindDate},
	"Data Printer.":     {Key: "dataPrinter", Kind: KindDate},
	"Data Debuxo.":      {Key: "dataDebuxo", Kind: KindDate},
	"Data Amostras.":    {Key: "dataAmostras", Kind: KindDate},
	"Data Bordados.":    {Key: "dataBordados", Kind: KindDate},
	"Facturada":         {Key: "facturada", Kind: KindNumber},
	"Em Aberto":         {Key: "emAberto", Kind: KindNumber},
}

// descricaoFields are the targets of the duplicated "Descricao" label, in
// occurrence order.
var descricaoFields = []Field{
	{Key: "descricaoCor", Kind: KindText},
	{Key: "descricaoTam", Kind: KindText},
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Mapping is the result of resolving one header row: column index to
// canonical field, plus the set of canonical keys that were found.
type Mapping struct {
	// ByIndex maps a 0-based column index to its canonical field.
	ByIndex map[int]Field

	// Present is the set of canonical field keys the header produced.
	Present map[string]bool
}

// Resolve maps a header row to canonical fields.
//
// Matching is an exact, case-sensitive comparison of the trimmed label
// against the dictionary. Unknown and blank headers are silently ignored,
// which keeps the resolver forward compatible with extra report columns.
// The first "Descricao" occurrence maps to the color description, the
// second to the size description, and any further occurrences are ignored;
// the occurrence counter is local to this call.
func Resolve(headers []string) Mapping {
	m := Mapping{
		ByIndex: make(map[int]Field),
		Present: make(map[string]bool),
	}

	descricaoCount := 0
	for idx, header := range headers {
		label := strings.TrimSpace(header)
		if label == "" {
			continue
		}

		if label == "Descricao" {
			if descricaoCount < len(descricaoFields) {
				field := descricaoFields[descricaoCount]
				m.ByIndex[idx] = field
				m.Present[field.Key] = true
			}
			descricaoCount++
			continue
		}

		if field, ok := dictionary[label]; ok {
			m.ByIndex[idx] = field
			m.Present[field.Key] = true
		}
	}

	return m
}

// MissingRequired lists the required canonical fields the mapping did not
// produce, in the canonical order.
func (m Mapping) MissingRequired() []string {
	var missing []string
	for _, key := range Required {
		if !m.Present[key] {
			missing = append(missing, key)
		}
	}
	return missing
}
