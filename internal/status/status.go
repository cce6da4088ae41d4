// =============================================================================
// Ordemtex - Stage/Status Inference
// =============================================================================
//
// The export stores a flat snapshot of each order line, never its current
// pipeline stage. This module reconstructs that state: which of the six
// sectors an order sits in, and its overall status, derived purely from
// which date fields are populated and which quantities are nonzero.
//
// The six sectors form an ordered chain:
//
//   weaving -> raw loop -> dyeing -> confection -> packaging -> stock
//
// Each sector has its own rule, dispatched through a table keyed by sector
// id. Branch order inside a rule matters: later branches assume the earlier
// conditions already failed, so the rules must be read (and kept) top to
// bottom.
//
// Everything here is a pure function of the record plus an explicit "now";
// nothing reads the wall clock, which keeps the inference reproducible.
//
// =============================================================================

package status

import (
	"time"

	"github.com/jmtavares/ordemtex/internal/normalize"
	"github.com/jmtavares/ordemtex/internal/types"
)

// rawLoopExemptFamilies are the article families that skip the raw-loop
// sector entirely: bedding and by-the-meter articles go straight from
// weaving to dyeing. Business rule carried over literally; deliberately
// not configurable.
var rawLoopExemptFamilies = map[string]bool{
	"Cama":    true,
	"A Metro": true,
}

// =============================================================================
// PER-SECTOR STATE
// =============================================================================

// sectorRule computes the state of one sector for one order.
type sectorRule func(o *types.Order) types.SectorState

// sectorRules dispatches by sector id. Every id in types.Sectors has an
// entry.
var sectorRules = map[types.SectorID]sectorRule{
	types.SectorTecelagem:  tecelagemState,
	types.SectorFelpoCru:   felpoCruState,
	types.SectorTinturaria: tinturariaState,
	types.SectorConfeccao:  confeccaoState,
	types.SectorEmbalagem:  embalagemState,
	types.SectorStock:      stockState,
}

// StateFor infers the state of one sector for one order. Unknown sector
// ids report pending.
func StateFor(o *types.Order, sector types.SectorID) types.SectorState {
	if rule, ok := sectorRules[sector]; ok {
		return rule(o)
	}
	return types.StatePending
}

// States infers all six sector states in chain order.
func States(o *types.Order) map[types.SectorID]types.SectorState {
	states := make(map[types.SectorID]types.SectorState, len(types.Sectors))
	for _, s := range types.Sectors {
		states[s.ID] = StateFor(o, s.ID)
	}
	return states
}

// Weaving has no quantity column of its own: its only evidence is the
// weaving date, and completion shows up as material arriving in raw loop.
func tecelagemState(o *types.Order) types.SectorState {
	if o.DataTec == "" {
		return types.StatePending
	}
	if o.FelpoCru > 0 || o.DataFelpoCru != "" {
		return types.StateCompleted
	}
	return types.StateInProgress
}

// Raw loop is the one sector with an applicability gate: exempt families
// never pass through it, so for them an untouched sector reads
// not_applicable rather than pending. A nonzero quantity always means the
// material is sitting there now, regardless of dates.
func felpoCruState(o *types.Order) types.SectorState {
	if o.DataFelpoCru == "" && o.FelpoCru == 0 {
		if rawLoopExemptFamilies[o.Familia] {
			return types.StateNotApplicable
		}
		return types.StatePending
	}
	if o.FelpoCru > 0 {
		return types.StateInProgress
	}
	if o.DataFelpoCru != "" && (o.Tinturaria > 0 || o.DataTint != "") {
		return types.StateCompleted
	}
	if o.DataFelpoCru != "" {
		return types.StateInProgress
	}
	return types.StatePending
}

func tinturariaState(o *types.Order) types.SectorState {
	if o.Tinturaria > 0 {
		return types.StateInProgress
	}
	if o.DataTint != "" {
		if o.ConfeccaoTotal() > 0 || o.DataConf != "" {
			return types.StateCompleted
		}
		return types.StateInProgress
	}
	return types.StatePending
}

func confeccaoState(o *types.Order) types.SectorState {
	if o.ConfeccaoTotal() > 0 {
		return types.StateInProgress
	}
	if o.DataConf != "" {
		if o.EmbAcab > 0 || o.DataArmExp != "" {
			return types.StateCompleted
		}
		return types.StateInProgress
	}
	return types.StatePending
}

func embalagemState(o *types.Order) types.SectorState {
	if o.EmbAcab > 0 {
		return types.StateInProgress
	}
	if o.DataArmExp != "" {
		if o.StockCx > 0 || o.DataEnt != "" {
			return types.StateCompleted
		}
		return types.StateInProgress
	}
	return types.StatePending
}

// Stock closes the chain: once nothing is open the order has fully
// shipped or been invoiced.
func stockState(o *types.Order) types.SectorState {
	if o.StockCx > 0 {
		return types.StateInProgress
	}
	if o.EmAberto == 0 {
		return types.StateCompleted
	}
	return types.StatePending
}

// =============================================================================
// OVERALL ORDER STATUS
// =============================================================================

// OrderStatus infers the overall status of one order at the given moment.
// Precedence, first match wins:
//
//   1. open quantity == 0            -> concluida
//   2. requested date passed, open>0 -> atrasada
//   3. invoiced quantity > 0         -> facturada
//   4. otherwise                     -> em_producao
//
// The completed check runs first on purpose: a fully shipped order is
// never reported as delayed, no matter how old its requested date is.
func OrderStatus(o *types.Order, now time.Time) types.OrderStatus {
	if o.EmAberto == 0 {
		return types.StatusConcluida
	}
	if IsDelayed(o, now) {
		return types.StatusAtrasada
	}
	if o.Facturada > 0 {
		return types.StatusFacturada
	}
	return types.StatusEmProducao
}

// IsDelayed reports whether the order's requested date is past or present
// while quantity remains open. Orders without a parseable requested date
// cannot be delayed.
func IsDelayed(o *types.Order, now time.Time) bool {
	due, ok := normalize.ParseDMY(o.DataPedida)
	if !ok {
		return false
	}
	return !due.After(now) && o.EmAberto > 0
}
