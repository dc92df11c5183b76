package controller

import (
	"context"

	"github.com/pixil98/go-town/internal/town"
)

// InventoryController mirrors an inventory viewing area.
type InventoryController struct {
	areaController
}

// NewInventoryController creates a controller for the inventory area with the
// given id.
func NewInventoryController(areaID string, player town.PlayerID, sender Sender) *InventoryController {
	return &InventoryController{
		areaController: newAreaController(areaID, player, sender),
	}
}

// UpdateFrom diffs the incoming snapshot against the cached one and emits a
// typed event per field that actually changed.
func (c *InventoryController) UpdateFrom(m *town.AreaModel) {
	old := c.model
	c.model = m

	var kinds []EventKind
	if old == nil || !occupantsEqual(old.Occupants, m.Occupants) {
		kinds = append(kinds, EventOccupantsChanged)
	}
	if old == nil || !recordsEqual(old.PlayerInventory, m.PlayerInventory) {
		kinds = append(kinds, EventInventoryChanged)
	}

	if len(kinds) > 0 {
		c.emit(m, kinds)
	}
}

// OpenInventory asks the server for a fresh snapshot.
func (c *InventoryController) OpenInventory(ctx context.Context) error {
	return c.send(ctx, &town.OpenInventory{})
}
