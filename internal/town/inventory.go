package town

import (
	"context"
	"fmt"
)

// InventoryArea is a read-mostly view adapter exposing a player's ledger
// inventory through the area-occupancy model. It holds no state of its own
// beyond occupancy.
type InventoryArea struct {
	occupancy

	ledger      *PlayerLedger
	broadcaster Broadcaster

	lastActor PlayerID
}

// NewInventoryArea creates an inventory viewing area.
func NewInventoryArea(id string, bounds Rect, ledger *PlayerLedger, b Broadcaster) *InventoryArea {
	return &InventoryArea{
		occupancy:   newOccupancy(id, AreaKindInventory, bounds),
		ledger:      ledger,
		broadcaster: b,
	}
}

func (a *InventoryArea) HandleCommand(ctx context.Context, player PlayerID, cmd Command) error {
	switch cmd.(type) {
	case *OpenInventory:
		// Snapshot broadcast only.
	default:
		return fmt.Errorf("%w: %T in inventory area %q", ErrInvalidCommand, cmd, a.id)
	}

	a.lastActor = player
	return a.broadcaster.AreaChanged(a.ToModel())
}

// ToModel builds a fresh snapshot carrying the last actor's inventory.
func (a *InventoryArea) ToModel() *AreaModel {
	m := &AreaModel{
		ID:        a.id,
		Type:      a.kind,
		Occupants: a.Occupants(),
	}
	if a.lastActor != "" {
		m.PlayerInventory = a.ledger.Inventory(a.lastActor).Records()
	}
	return m
}
