package controller

import (
	"context"

	"github.com/pixil98/go-town/internal/town"
)

// GroceryController mirrors a grocery store area.
type GroceryController struct {
	areaController
}

// NewGroceryController creates a controller for the store with the given id.
func NewGroceryController(areaID string, player town.PlayerID, sender Sender) *GroceryController {
	return &GroceryController{
		areaController: newAreaController(areaID, player, sender),
	}
}

// UpdateFrom diffs the incoming snapshot against the cached one and emits a
// typed event per field that actually changed. Identical snapshots emit
// nothing.
func (c *GroceryController) UpdateFrom(m *town.AreaModel) {
	old := c.model
	c.model = m

	var kinds []EventKind
	if old == nil || !occupantsEqual(old.Occupants, m.Occupants) {
		kinds = append(kinds, EventOccupantsChanged)
	}
	if old == nil || !recordsEqual(old.StoreInventory, m.StoreInventory) {
		kinds = append(kinds, EventShelfChanged)
	}
	if old == nil || !recordsEqual(old.Cart, m.Cart) {
		kinds = append(kinds, EventCartChanged)
	}
	if old == nil || old.TotalPrice != m.TotalPrice {
		kinds = append(kinds, EventTotalPriceChanged)
	}
	if old == nil || old.Balance != m.Balance {
		kinds = append(kinds, EventBalanceChanged)
	}
	if old == nil || !historiesEqual(old.History, m.History) {
		kinds = append(kinds, EventHistoryChanged)
	}

	if len(kinds) > 0 {
		c.emit(m, kinds)
	}
}

// OpenStore asks the server for a fresh snapshot.
func (c *GroceryController) OpenStore(ctx context.Context) error {
	return c.send(ctx, &town.OpenStore{})
}

// AddToCart stages qty of item for purchase.
func (c *GroceryController) AddToCart(ctx context.Context, item town.ItemName, qty int) error {
	return c.send(ctx, &town.AddToCart{Item: item, Quantity: qty})
}

// RemoveFromCart returns qty of item to the shelf.
func (c *GroceryController) RemoveFromCart(ctx context.Context, item town.ItemName, qty int) error {
	return c.send(ctx, &town.RemoveFromCart{Item: item, Quantity: qty})
}

// Checkout purchases the whole cart.
func (c *GroceryController) Checkout(ctx context.Context) error {
	return c.send(ctx, &town.Checkout{})
}
