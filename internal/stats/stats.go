// =============================================================================
// Ordemtex - Aggregation Engine
// =============================================================================
//
// Pure functions computing the dashboard aggregates over an order
// collection: the KPI block, per-sector load, per-client rollups and the
// timeline bar geometry. Nothing here mutates the orders; every aggregate
// is recomputed from scratch on each call, which is what makes a new
// import or filter change a simple full recompute.
//
// All time-dependent figures take an explicit "now".
//
// =============================================================================

package stats

import (
	"math"
	"sort"
	"time"

	"github.com/jmtavares/ordemtex/internal/normalize"
	"github.com/jmtavares/ordemtex/internal/status"
	"github.com/jmtavares/ordemtex/internal/types"
)

// =============================================================================
// KPIs
// =============================================================================

// KPIs computes the dashboard KPI block.
func KPIs(orders []types.Order, now time.Time) types.KPIData {
	weekAhead := now.AddDate(0, 0, 7)
	monthAhead := time.Date(now.Year(), now.Month()+1, now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), now.Location())

	var kpi types.KPIData
	completed, completedOnTime := 0, 0

	for i := range orders {
		o := &orders[i]

		if o.EmAberto > 0 {
			kpi.TotalEncomendas++
		}
		if status.IsDelayed(o, now) {
			kpi.EncomendasAtrasadas++
		}

		if due, ok := normalize.ParseDMY(o.DataPedida); ok && o.EmAberto > 0 {
			if !due.Before(now) && !due.After(weekAhead) {
				kpi.EntregasEstaSemana++
			}
			if !due.Before(now) && !due.After(monthAhead) {
				kpi.EntregasEsteMes++
			}
		}

		if o.EmAberto == 0 {
			completed++
			due, dueOK := normalize.ParseDMY(o.DataPedida)
			shipped, shipOK := normalize.ParseDMY(o.DataEnt)
			if dueOK && shipOK && !shipped.After(due) {
				completedOnTime++
			}
		}

		kpi.QuantidadeProducao += o.EmAberto
		kpi.QuantidadeFacturada += o.Facturada
		kpi.QuantidadeEmAberto += o.EmAberto
	}

	// Completion rate over completed orders only; 100% when nothing is
	// completed yet, so an empty dashboard does not read as failing.
	kpi.TaxaCumprimento = 100
	if completed > 0 {
		kpi.TaxaCumprimento = int(math.Round(float64(completedOnTime) / float64(completed) * 100))
	}

	return kpi
}

// =============================================================================
// PER-SECTOR LOAD
// =============================================================================

// SectorLoad computes, for each of the six sectors, the total quantity
// currently sitting there and the number of orders contributing to it.
//
// Weaving has no quantity column of its own: an order counts toward
// weaving with its open quantity while it has a weaving date, no raw-loop
// progress and quantity still open.
func SectorLoad(orders []types.Order) []types.SectorStats {
	stats := make([]types.SectorStats, 0, len(types.Sectors))

	for _, sector := range types.Sectors {
		entry := types.SectorStats{SectorID: sector.ID, SectorName: sector.Name}

		for i := range orders {
			qty := sectorQuantity(&orders[i], sector.ID)
			if qty > 0 {
				entry.Quantidade += qty
				entry.NumeroEncomendas++
			}
		}

		stats = append(stats, entry)
	}

	return stats
}

// sectorQuantity is the quantity one order contributes to one sector.
func sectorQuantity(o *types.Order, sector types.SectorID) float64 {
	switch sector {
	case types.SectorTecelagem:
		if o.DataTec != "" && o.FelpoCru == 0 && o.EmAberto > 0 {
			return o.EmAberto
		}
		return 0
	case types.SectorFelpoCru:
		return o.FelpoCru
	case types.SectorTinturaria:
		return o.Tinturaria
	case types.SectorConfeccao:
		return o.ConfeccaoTotal()
	case types.SectorEmbalagem:
		return o.EmbAcab
	case types.SectorStock:
		return o.StockCx
	default:
		return 0
	}
}

// =============================================================================
// PER-CLIENT ROLLUP
// =============================================================================

// ClientRollup groups orders by client name (exact, case-sensitive) and
// sums order count, requested quantity and open quantity per client.
// The result is sorted descending by order count; ties keep a stable
// alphabetical order so repeated runs print identically.
func ClientRollup(orders []types.Order) []types.ClientStats {
	byClient := make(map[string]*types.ClientStats)

	for i := range orders {
		o := &orders[i]
		entry, ok := byClient[o.Cliente]
		if !ok {
			entry = &types.ClientStats{Cliente: o.Cliente}
			byClient[o.Cliente] = entry
		}
		entry.TotalEncomendas++
		entry.QuantidadeTotal += o.QtdPedida
		entry.EmAberto += o.EmAberto
	}

	rollup := make([]types.ClientStats, 0, len(byClient))
	for _, entry := range byClient {
		rollup = append(rollup, *entry)
	}

	sort.Slice(rollup, func(i, j int) bool {
		if rollup[i].TotalEncomendas != rollup[j].TotalEncomendas {
			return rollup[i].TotalEncomendas > rollup[j].TotalEncomendas
		}
		return rollup[i].Cliente < rollup[j].Cliente
	})

	return rollup
}

// =============================================================================
// TIMELINE GEOMETRY
// =============================================================================

// sectorSpan is one sector's slice of an order's journey: its own start
// date, and the next sector's start date as the end (an order leaves a
// sector when the next one begins).
type sectorSpan struct {
	sector   types.Sector
	start    string
	end      string
	quantity float64
	active   bool
}

// spansFor lays out the six sector spans of one order in chain order.
func spansFor(o *types.Order) []sectorSpan {
	return []sectorSpan{
		{
			sector:   types.Sectors[0],
			start:    o.DataTec,
			end:      firstNonEmpty(o.DataFelpoCru, o.DataTec),
			quantity: weavingQuantity(o),
			active:   o.DataTec != "" && o.FelpoCru == 0 && o.EmAberto > 0,
		},
		{
			sector:   types.Sectors[1],
			start:    o.DataFelpoCru,
			end:      firstNonEmpty(o.DataTint, o.DataFelpoCru),
			quantity: o.FelpoCru,
			active:   o.FelpoCru > 0,
		},
		{
			sector:   types.Sectors[2],
			start:    o.DataTint,
			end:      firstNonEmpty(o.DataConf, o.DataTint),
			quantity: o.Tinturaria,
			active:   o.Tinturaria > 0,
		},
		{
			sector:   types.Sectors[3],
			start:    o.DataConf,
			end:      firstNonEmpty(o.DataArmExp, o.DataConf),
			quantity: o.ConfeccaoTotal(),
			active:   o.ConfeccaoTotal() > 0,
		},
		{
			sector:   types.Sectors[4],
			start:    o.DataArmExp,
			end:      firstNonEmpty(o.DataEnt, o.DataArmExp),
			quantity: o.EmbAcab,
			active:   o.EmbAcab > 0,
		},
		{
			sector:   types.Sectors[5],
			start:    o.DataEnt,
			end:      o.DataEnt,
			quantity: o.StockCx,
			active:   o.StockCx > 0,
		},
	}
}

// weavingQuantity: while an order is in weaving the whole requested
// quantity is on the looms.
func weavingQuantity(o *types.Order) float64 {
	if o.DataTec != "" {
		return o.QtdPedida
	}
	return 0
}

// TimelineBars computes the bar geometry of one order within a
// day-resolution date grid. A sector produces a bar only when its start
// date falls inside the grid; the end index snaps back to the start when
// the end date is absent, outside the grid, or earlier than the start.
// Bars span [StartIdx, EndIdx] inclusive.
func TimelineBars(o *types.Order, grid []time.Time) []types.TimelineBar {
	var bars []types.TimelineBar

	for _, span := range spansFor(o) {
		start, ok := normalize.ParseDMY(span.start)
		if !ok {
			continue
		}

		startIdx := gridIndex(grid, start)
		if startIdx < 0 {
			continue
		}

		endIdx := startIdx
		if end, ok := normalize.ParseDMY(span.end); ok {
			if idx := gridIndex(grid, end); idx > startIdx {
				endIdx = idx
			}
		}

		bars = append(bars, types.TimelineBar{
			SectorID:   span.sector.ID,
			SectorName: span.sector.Name,
			StartIdx:   startIdx,
			EndIdx:     endIdx,
			Quantity:   span.quantity,
			Active:     span.active,
		})
	}

	return bars
}

// DateGrid builds a day-resolution grid of the given length starting at
// from (midnight, day steps).
func DateGrid(from time.Time, days int) []time.Time {
	grid := make([]time.Time, 0, days)
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < days; i++ {
		grid = append(grid, day.AddDate(0, 0, i))
	}
	return grid
}

// gridIndex locates a calendar day inside the grid, -1 when absent.
func gridIndex(grid []time.Time, day time.Time) int {
	for i, d := range grid {
		if d.Year() == day.Year() && d.YearDay() == day.YearDay() {
			return i
		}
	}
	return -1
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
