package town

import (
	"fmt"
	"sync"
)

// PlayerID identifies a player across the whole town.
type PlayerID string

// ledgerEntry holds one player's authoritative records. Entries are created
// lazily on first reference and live for the process lifetime of the town.
type ledgerEntry struct {
	inventory *ItemList
	cart      *ItemList
	balance   int
	history   []*ItemList
}

// PlayerLedger is the authoritative per-player store: inventory, cart, balance
// and purchase history. It is created once at town start and passed by
// reference into every area constructor; there is no ambient global copy.
//
// Reads return fully-owned copies so callers can build wire snapshots without
// holding references into live state. All mutations go through ledger methods.
type PlayerLedger struct {
	mu             sync.RWMutex
	entries        map[PlayerID]*ledgerEntry
	dirty          map[PlayerID]bool
	openingBalance int
}

// NewPlayerLedger creates an empty ledger. Players referenced for the first
// time start with openingBalance.
func NewPlayerLedger(openingBalance int) *PlayerLedger {
	return &PlayerLedger{
		entries:        make(map[PlayerID]*ledgerEntry),
		dirty:          make(map[PlayerID]bool),
		openingBalance: openingBalance,
	}
}

// entry returns the player's record, creating it on first reference.
func (pl *PlayerLedger) entry(id PlayerID) *ledgerEntry {
	e, ok := pl.entries[id]
	if !ok {
		e = &ledgerEntry{
			inventory: NewItemList(),
			cart:      NewItemList(),
			balance:   pl.openingBalance,
		}
		pl.entries[id] = e
	}
	return e
}

// Inventory returns a copy of the player's inventory, creating an empty
// record on first access.
func (pl *PlayerLedger) Inventory(id PlayerID) *ItemList {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.entry(id).inventory.Copy()
}

// AddToInventory merges items into the player's inventory.
func (pl *PlayerLedger) AddToInventory(id PlayerID, items *ItemList) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if err := pl.entry(id).inventory.Merge(items); err != nil {
		return err
	}
	pl.dirty[id] = true
	return nil
}

// RemoveFromInventory subtracts items from the player's inventory. Referencing
// a player with no prior record is an error here, unlike the read paths.
func (pl *PlayerLedger) RemoveFromInventory(id PlayerID, items *ItemList) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	e, ok := pl.entries[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInventoryNotFound, id)
	}
	if err := e.inventory.Subtract(items); err != nil {
		return err
	}
	pl.dirty[id] = true
	return nil
}

// HasInInventory reports whether the player's inventory covers items.
func (pl *PlayerLedger) HasInInventory(id PlayerID, items *ItemList) bool {
	pl.mu.RLock()
	defer pl.mu.RUnlock()

	e, ok := pl.entries[id]
	if !ok {
		return items == nil || items.IsEmpty()
	}
	return e.inventory.HasAtLeast(items)
}

// Cart returns a copy of the player's cart, creating an empty record on
// first access.
func (pl *PlayerLedger) Cart(id PlayerID) *ItemList {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.entry(id).cart.Copy()
}

// AddToCart merges items staged for purchase into the player's cart.
func (pl *PlayerLedger) AddToCart(id PlayerID, items *ItemList) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	if err := pl.entry(id).cart.Merge(items); err != nil {
		return err
	}
	pl.dirty[id] = true
	return nil
}

// RemoveFromCart subtracts items from the player's cart.
func (pl *PlayerLedger) RemoveFromCart(id PlayerID, items *ItemList) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	e, ok := pl.entries[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCartNotFound, id)
	}
	if err := e.cart.Subtract(items); err != nil {
		return err
	}
	pl.dirty[id] = true
	return nil
}

// EmptyCart discards the player's staged items and returns what was held.
func (pl *PlayerLedger) EmptyCart(id PlayerID) *ItemList {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	e := pl.entry(id)
	cart := e.cart
	e.cart = NewItemList()
	pl.dirty[id] = true
	return cart
}

// Balance returns the player's current balance.
func (pl *PlayerLedger) Balance(id PlayerID) int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return pl.entry(id).balance
}

// AdjustBalance applies delta to the player's balance. Delta may be negative;
// callers enforce any funds floor before mutating.
func (pl *PlayerLedger) AdjustBalance(id PlayerID, delta int) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	pl.entry(id).balance += delta
	pl.dirty[id] = true
}

// RecordPurchase appends a snapshot copy of items to the player's purchase
// history. Prior entries are never mutated or removed.
func (pl *PlayerLedger) RecordPurchase(id PlayerID, items *ItemList) {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	e := pl.entry(id)
	e.history = append(e.history, items.Copy())
	pl.dirty[id] = true
}

// History returns copies of the player's purchase history, oldest first.
func (pl *PlayerLedger) History(id PlayerID) []*ItemList {
	pl.mu.RLock()
	defer pl.mu.RUnlock()

	e, ok := pl.entries[id]
	if !ok {
		return nil
	}
	out := make([]*ItemList, len(e.history))
	for i, h := range e.history {
		out[i] = h.Copy()
	}
	return out
}

// Snapshot returns a fully-owned persistable copy of the player's records.
func (pl *PlayerLedger) Snapshot(id PlayerID) *LedgerRecord {
	pl.mu.RLock()
	defer pl.mu.RUnlock()

	e, ok := pl.entries[id]
	if !ok {
		return nil
	}
	rec := &LedgerRecord{
		Balance:   e.balance,
		Inventory: e.inventory.Records(),
		Cart:      e.cart.Records(),
	}
	for _, h := range e.history {
		rec.History = append(rec.History, h.Records())
	}
	return rec
}

// RestoreEntry seeds a player's records from a persisted snapshot, replacing
// any existing entry. The entry is not marked dirty; it already matches the
// store.
func (pl *PlayerLedger) RestoreEntry(id PlayerID, rec *LedgerRecord) error {
	inv, err := listFromRecordSlice(rec.Inventory)
	if err != nil {
		return fmt.Errorf("inventory: %w", err)
	}
	cart, err := listFromRecordSlice(rec.Cart)
	if err != nil {
		return fmt.Errorf("cart: %w", err)
	}
	var history []*ItemList
	for i, h := range rec.History {
		l, err := listFromRecordSlice(h)
		if err != nil {
			return fmt.Errorf("history %d: %w", i, err)
		}
		history = append(history, l)
	}

	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.entries[id] = &ledgerEntry{
		inventory: inv,
		cart:      cart,
		balance:   rec.Balance,
		history:   history,
	}
	return nil
}

func listFromRecordSlice(recs []ItemRecord) (*ItemList, error) {
	l := NewItemList()
	for _, rec := range recs {
		if err := l.Add(rec.Name, rec.Quantity); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// FlushDirty calls fn for each player mutated since the last flush and clears
// the dirty set. Used by the durable mirror; the in-memory state stays
// authoritative regardless of what fn does.
func (pl *PlayerLedger) FlushDirty(fn func(PlayerID, *LedgerRecord) error) error {
	pl.mu.Lock()
	ids := make([]PlayerID, 0, len(pl.dirty))
	for id := range pl.dirty {
		ids = append(ids, id)
	}
	pl.dirty = make(map[PlayerID]bool)
	pl.mu.Unlock()

	for _, id := range ids {
		snap := pl.Snapshot(id)
		if snap == nil {
			continue
		}
		if err := fn(id, snap); err != nil {
			return err
		}
	}
	return nil
}
