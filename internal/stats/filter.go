// =============================================================================
// Ordemtex - Order Filtering
// =============================================================================
//
// Filtering over an in-memory order collection, for the report surface.
// Filters never mutate the collection; they produce a fresh slice, and the
// aggregates are recomputed over whatever subset the caller selected.
//
// =============================================================================

package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/jmtavares/ordemtex/internal/normalize"
	"github.com/jmtavares/ordemtex/internal/status"
	"github.com/jmtavares/ordemtex/internal/types"
)

// Filter selects a subset of an order collection. Zero values mean "no
// constraint". Date bounds apply to the normalized DD/MM/YYYY fields and
// are inclusive.
type Filter struct {
	// Search matches case-insensitively against document number, client,
	// PO and article reference.
	Search string

	// Exact matches.
	Cliente string
	Familia string
	Status  types.OrderStatus

	// Substring matches.
	NrDocumento string
	PO          string

	// Issue date window.
	DataEmissaoInicio time.Time
	DataEmissaoFim    time.Time

	// Requested date window.
	DataPedidaInicio time.Time
	DataPedidaFim    time.Time
}

// Apply filters the collection. The status filter is evaluated with the
// given "now", consistent with the rest of the derived figures.
func (f Filter) Apply(orders []types.Order, now time.Time) []types.Order {
	var out []types.Order
	for i := range orders {
		if f.matches(&orders[i], now) {
			out = append(out, orders[i])
		}
	}
	return out
}

func (f Filter) matches(o *types.Order, now time.Time) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(o.NrDocumento), term) &&
			!strings.Contains(strings.ToLower(o.Cliente), term) &&
			!strings.Contains(strings.ToLower(o.PO), term) &&
			!strings.Contains(strings.ToLower(o.Referencia), term) {
			return false
		}
	}

	if f.Cliente != "" && o.Cliente != f.Cliente {
		return false
	}
	if f.Familia != "" && o.Familia != f.Familia {
		return false
	}
	if f.NrDocumento != "" && !strings.Contains(o.NrDocumento, f.NrDocumento) {
		return false
	}
	if f.PO != "" && !strings.Contains(strings.ToLower(o.PO), strings.ToLower(f.PO)) {
		return false
	}
	if f.Status != "" && status.OrderStatus(o, now) != f.Status {
		return false
	}

	if !inWindow(o.DataEmissao, f.DataEmissaoInicio, f.DataEmissaoFim) {
		return false
	}
	if !inWindow(o.DataPedida, f.DataPedidaInicio, f.DataPedidaFim) {
		return false
	}

	return true
}

// inWindow checks a normalized date field against an optional inclusive
// window. Records without a parseable date always pass: a date filter
// narrows dated lines, it does not hide dateless ones.
func inWindow(field string, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}

	d, ok := normalize.ParseDMY(field)
	if !ok {
		return true
	}

	if !from.IsZero() && d.Before(from) {
		return false
	}
	if !to.IsZero() && d.After(to) {
		return false
	}
	return true
}

// UniqueClients lists the distinct client names, sorted.
func UniqueClients(orders []types.Order) []string {
	return distinct(orders, func(o *types.Order) string { return o.Cliente })
}

// UniqueFamilies lists the distinct article families, sorted.
func UniqueFamilies(orders []types.Order) []string {
	return distinct(orders, func(o *types.Order) string { return o.Familia })
}

func distinct(orders []types.Order, get func(*types.Order) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := range orders {
		if v := get(&orders[i]); v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
