package town

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-town/internal/storage"
)

// LedgerRecord is the persisted form of one player's ledger entry.
type LedgerRecord struct {
	Balance   int            `json:"balance"`
	Inventory []ItemRecord   `json:"inventory,omitempty"`
	Cart      []ItemRecord   `json:"cart,omitempty"`
	History   [][]ItemRecord `json:"history,omitempty"`
}

// Validate satisfies storage.ValidatingSpec.
func (r *LedgerRecord) Validate() error {
	el := errors.NewErrorList()
	for _, rec := range r.Inventory {
		if rec.Quantity < 0 {
			el.Add(fmt.Errorf("inventory %q: quantity is negative", rec.Name))
		}
	}
	for _, rec := range r.Cart {
		if rec.Quantity < 0 {
			el.Add(fmt.Errorf("cart %q: quantity is negative", rec.Name))
		}
	}
	return el.Err()
}

// LedgerMirror periodically writes dirty ledger entries to a durable store.
// The mirror is strictly behind the in-memory ledger: writes never gate a
// mutation or a broadcast, and a failed write is logged; the entry is written
// again the next time it is mutated.
type LedgerMirror struct {
	ledger *PlayerLedger
	store  storage.Storer[*LedgerRecord]
}

// NewLedgerMirror creates a mirror flushing ledger into store.
func NewLedgerMirror(ledger *PlayerLedger, store storage.Storer[*LedgerRecord]) *LedgerMirror {
	return &LedgerMirror{ledger: ledger, store: store}
}

// Restore loads every persisted record into the ledger. Runs once at boot,
// before any command is accepted.
func (m *LedgerMirror) Restore() error {
	for id, rec := range m.store.GetAll() {
		if err := m.ledger.RestoreEntry(PlayerID(id), rec); err != nil {
			return fmt.Errorf("restoring ledger for %q: %w", id, err)
		}
	}
	return nil
}

// Tick flushes every entry mutated since the last tick.
func (m *LedgerMirror) Tick(ctx context.Context) error {
	return m.ledger.FlushDirty(func(id PlayerID, rec *LedgerRecord) error {
		if err := m.store.Save(string(id), rec); err != nil {
			slog.WarnContext(ctx, "ledger mirror write failed", "player", id, "error", err)
		}
		return nil
	})
}
