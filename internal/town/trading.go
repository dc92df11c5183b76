package town

import (
	"context"
	"fmt"
	"slices"
)

// TradingArea hosts the peer-to-peer trading board: an ordered list of open
// offers. Posting an offer debits the offered items from the initiator's
// inventory immediately, reserving them inside the offer so they cannot be
// double-spent or double-offered. Offers are served first-accept-wins.
type TradingArea struct {
	occupancy

	board       []*TradeOffer
	ledger      *PlayerLedger
	broadcaster Broadcaster

	lastActor PlayerID
}

// NewTradingArea creates a trading area with an empty board.
func NewTradingArea(id string, bounds Rect, ledger *PlayerLedger, b Broadcaster) *TradingArea {
	return &TradingArea{
		occupancy:   newOccupancy(id, AreaKindTrading, bounds),
		ledger:      ledger,
		broadcaster: b,
	}
}

// Board returns the open offers in posting order.
func (a *TradingArea) Board() []*TradeOffer {
	return slices.Clone(a.board)
}

// HandleCommand validates and applies one trading command, then broadcasts a
// fresh snapshot. Each command is validated in full before any ledger is
// touched, so a failure never leaves one side mutated.
func (a *TradingArea) HandleCommand(ctx context.Context, player PlayerID, cmd Command) error {
	var err error
	switch c := cmd.(type) {
	case *OpenBoard:
		// Snapshot broadcast only.
	case *PostOffer:
		err = a.postOffer(player, c.Offered, c.Wanted)
	case *AcceptOffer:
		err = a.acceptOffer(player, c.OfferID)
	case *DeleteOffer:
		err = a.deleteOffer(player)
	default:
		return fmt.Errorf("%w: %T in trading area %q", ErrInvalidCommand, cmd, a.id)
	}
	if err != nil {
		return err
	}

	a.lastActor = player
	return a.broadcaster.AreaChanged(a.ToModel())
}

// postOffer reserves the offered items out of the initiator's inventory and
// appends the offer to the board.
func (a *TradingArea) postOffer(initiator PlayerID, offered, wanted []ItemStack) error {
	offeredList, err := listFromStacks(offered)
	if err != nil {
		return err
	}
	wantedList, err := listFromStacks(wanted)
	if err != nil {
		return err
	}

	offer, err := NewTradeOffer(initiator, offeredList, wantedList)
	if err != nil {
		return err
	}
	if !a.ledger.HasInInventory(initiator, offer.Offered) {
		return fmt.Errorf("%w: initiator does not hold the offered items", ErrInsufficientInventory)
	}

	if err := a.ledger.RemoveFromInventory(initiator, offer.Offered); err != nil {
		return err
	}
	a.board = append(a.board, offer)
	return nil
}

// acceptOffer completes an open offer as player. The offered items already
// live inside the offer (debited at post time), so only the acceptor's side
// needs an inventory check before anything is applied.
func (a *TradingArea) acceptOffer(player PlayerID, offerID string) error {
	idx := slices.IndexFunc(a.board, func(o *TradeOffer) bool { return o.ID == offerID })
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrOfferNotFound, offerID)
	}
	offer := a.board[idx]

	if player == offer.Initiator {
		return ErrOwnOffer
	}
	if !a.ledger.HasInInventory(player, offer.Wanted) {
		return fmt.Errorf("%w: acceptor does not hold the wanted items", ErrInsufficientInventory)
	}

	if err := offer.Accept(player); err != nil {
		return err
	}
	a.board = slices.Delete(a.board, idx, idx+1)

	if err := a.ledger.RemoveFromInventory(player, offer.Wanted); err != nil {
		return err
	}
	if err := a.ledger.AddToInventory(player, offer.Offered); err != nil {
		return err
	}
	return a.ledger.AddToInventory(offer.Initiator, offer.Wanted)
}

// deleteOffer retracts the initiator's oldest open offer, returning the
// reserved items to their inventory.
func (a *TradingArea) deleteOffer(initiator PlayerID) error {
	idx := slices.IndexFunc(a.board, func(o *TradeOffer) bool { return o.Initiator == initiator })
	if idx < 0 {
		return fmt.Errorf("%w: no open offer by %q", ErrOfferNotFound, initiator)
	}
	offer := a.board[idx]

	a.board = slices.Delete(a.board, idx, idx+1)
	return a.ledger.AddToInventory(initiator, offer.Offered)
}

// ToModel builds a fresh snapshot of the board plus the last actor's
// inventory.
func (a *TradingArea) ToModel() *AreaModel {
	m := &AreaModel{
		ID:        a.id,
		Type:      a.kind,
		Occupants: a.Occupants(),
	}
	for _, offer := range a.board {
		om := TradeOfferModel{
			ID:        offer.ID,
			Offered:   offer.Offered.Records(),
			Wanted:    offer.Wanted.Records(),
			Initiator: offer.Initiator,
			Acceptor:  offer.Acceptor,
			Completed: offer.Completed,
		}
		m.TradingBoard = append(m.TradingBoard, om)
	}
	if a.lastActor != "" {
		m.Inventory = a.ledger.Inventory(a.lastActor).Records()
	}
	return m
}

// listFromStacks builds an item list from wire stacks, folding any list-level
// failure into an invalid-offer error.
func listFromStacks(stacks []ItemStack) (*ItemList, error) {
	l, err := NewItemListOf(stacks...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOffer, err)
	}
	return l, nil
}
