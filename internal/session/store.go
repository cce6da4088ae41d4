// =============================================================================
// Ordemtex - Import Session Store
// =============================================================================
//
// The in-memory application state: the current order collection plus the
// history of imports that produced it. The store is an explicit object
// owned by the caller, never a package-level singleton, so two commands
// (or two tests) can never bleed state into each other.
//
// Orders are immutable once imported; a new import either replaces the
// collection or appends to it, per the configured mode. The store is built
// for the single-user, one-import-at-a-time model of the planning desk:
// no locking, callers do not overlap.
//
// =============================================================================

package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/jmtavares/ordemtex/internal/types"
)

// Mode selects what an import does to the existing collection.
type Mode string

const (
	// ModeReplace discards the previous collection. The default.
	ModeReplace Mode = "replace"

	// ModeAppend keeps previous imports and adds the new orders after
	// them, e.g. when the planning desk loads one export per factory.
	ModeAppend Mode = "append"
)

// ImportRecord is one entry of the import history.
type ImportRecord struct {
	// ID is a random batch identifier, unique per import.
	ID string `json:"id"`

	FileName   string    `json:"fileName"`
	ImportedAt time.Time `json:"importedAt"`

	TotalRows  int `json:"totalRows"`
	ValidRows  int `json:"validRows"`
	ErrorCount int `json:"errorCount"`
}

// Store holds the session's order collection and import history.
type Store struct {
	mode    Mode
	orders  []types.Order
	history []ImportRecord
}

// NewStore creates an empty store with the given import mode. An
// unrecognized mode falls back to replace.
func NewStore(mode Mode) *Store {
	if mode != ModeAppend {
		mode = ModeReplace
	}
	return &Store{mode: mode}
}

// Apply folds one parse result into the store and records it in the
// history. Failed imports (zero valid rows) still land in the history so
// the desk can see what was attempted.
func (s *Store) Apply(fileName string, res *types.ParseResult, at time.Time) ImportRecord {
	rec := ImportRecord{
		ID:         uuid.New().String(),
		FileName:   fileName,
		ImportedAt: at,
		TotalRows:  res.TotalRows,
		ValidRows:  res.ValidRows,
		ErrorCount: len(res.Errors),
	}

	if s.mode == ModeReplace {
		s.orders = nil
	}
	s.orders = append(s.orders, res.Orders...)
	s.history = append(s.history, rec)

	return rec
}

// Orders returns the current collection. Callers treat it as a snapshot.
func (s *Store) Orders() []types.Order {
	return s.orders
}

// History returns the import history, oldest first.
func (s *Store) History() []ImportRecord {
	return s.history
}

// Clear empties the collection and the history.
func (s *Store) Clear() {
	s.orders = nil
	s.history = nil
}
