package controller

import (
	"context"

	"github.com/pixil98/go-town/internal/town"
)

// TradingController mirrors a trading area and its board.
type TradingController struct {
	areaController
}

// NewTradingController creates a controller for the trading area with the
// given id.
func NewTradingController(areaID string, player town.PlayerID, sender Sender) *TradingController {
	return &TradingController{
		areaController: newAreaController(areaID, player, sender),
	}
}

// UpdateFrom diffs the incoming snapshot against the cached one and emits a
// typed event per field that actually changed.
func (c *TradingController) UpdateFrom(m *town.AreaModel) {
	old := c.model
	c.model = m

	var kinds []EventKind
	if old == nil || !occupantsEqual(old.Occupants, m.Occupants) {
		kinds = append(kinds, EventOccupantsChanged)
	}
	if old == nil || !offersEqual(old.TradingBoard, m.TradingBoard) {
		kinds = append(kinds, EventBoardChanged)
	}
	if old == nil || !recordsEqual(old.Inventory, m.Inventory) {
		kinds = append(kinds, EventInventoryChanged)
	}

	if len(kinds) > 0 {
		c.emit(m, kinds)
	}
}

// OpenBoard asks the server for a fresh snapshot.
func (c *TradingController) OpenBoard(ctx context.Context) error {
	return c.send(ctx, &town.OpenBoard{})
}

// PostOffer places a new offer on the board.
func (c *TradingController) PostOffer(ctx context.Context, offered, wanted []town.ItemStack) error {
	return c.send(ctx, &town.PostOffer{Offered: offered, Wanted: wanted})
}

// AcceptOffer completes the identified offer as this controller's player.
func (c *TradingController) AcceptOffer(ctx context.Context, offerID string) error {
	return c.send(ctx, &town.AcceptOffer{OfferID: offerID})
}

// DeleteOffer retracts this player's open offer.
func (c *TradingController) DeleteOffer(ctx context.Context) error {
	return c.send(ctx, &town.DeleteOffer{})
}
