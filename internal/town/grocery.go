package town

import (
	"context"
	"fmt"
)

// GroceryStoreArea sells catalog items off a shared shelf. Players stage items
// in their ledger cart (physically absent from the shelf while staged) and buy
// the whole cart at checkout.
type GroceryStoreArea struct {
	occupancy

	shelf       *ItemList
	ledger      *PlayerLedger
	broadcaster Broadcaster

	// lastActor is the player whose command produced the most recent
	// snapshot; the model's cart, balance and history fields describe them.
	lastActor PlayerID
}

// NewGroceryStoreArea creates a store with its shelf pre-seeded from the
// catalog at the default starting quantity per item.
func NewGroceryStoreArea(id string, bounds Rect, ledger *PlayerLedger, b Broadcaster) *GroceryStoreArea {
	shelf := NewItemList()
	for _, name := range CatalogItems() {
		// Catalog items always add cleanly.
		_ = shelf.Add(name, DefaultShelfQuantity)
	}
	return &GroceryStoreArea{
		occupancy:   newOccupancy(id, AreaKindGrocery, bounds),
		shelf:       shelf,
		ledger:      ledger,
		broadcaster: b,
	}
}

// Shelf returns a copy of the current shelf stock.
func (a *GroceryStoreArea) Shelf() *ItemList {
	return a.shelf.Copy()
}

// HandleCommand validates and applies one store command, then broadcasts a
// fresh snapshot. Failures abort before any mutation.
func (a *GroceryStoreArea) HandleCommand(ctx context.Context, player PlayerID, cmd Command) error {
	var err error
	switch c := cmd.(type) {
	case *OpenStore:
		// No state change; the broadcast below lets a newly-opened UI
		// pull current shelf and cart contents.
	case *AddToCart:
		err = a.addToCart(player, c.Item, c.Quantity)
	case *RemoveFromCart:
		err = a.removeFromCart(player, c.Item, c.Quantity)
	case *Checkout:
		err = a.checkout(player)
	default:
		return fmt.Errorf("%w: %T in grocery store %q", ErrInvalidCommand, cmd, a.id)
	}
	if err != nil {
		return err
	}

	a.lastActor = player
	return a.broadcaster.AreaChanged(a.ToModel())
}

// addToCart moves qty of item from the shelf to the player's cart. A zero
// quantity on the wire means one.
func (a *GroceryStoreArea) addToCart(player PlayerID, item ItemName, qty int) error {
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveQuantity, qty)
	}
	if a.shelf.Quantity(item) < qty {
		return fmt.Errorf("%w: shelf has %d of %q", ErrItemNotFound, a.shelf.Quantity(item), item)
	}

	stack, err := NewItemListOf(ItemStack{Item: item, Quantity: qty})
	if err != nil {
		return err
	}
	if err := a.shelf.Remove(item, qty); err != nil {
		return err
	}
	return a.ledger.AddToCart(player, stack)
}

// removeFromCart returns qty of item from the player's cart to the shelf.
func (a *GroceryStoreArea) removeFromCart(player PlayerID, item ItemName, qty int) error {
	if qty == 0 {
		qty = 1
	}
	if qty < 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveQuantity, qty)
	}

	stack, err := NewItemListOf(ItemStack{Item: item, Quantity: qty})
	if err != nil {
		return err
	}
	if err := a.ledger.RemoveFromCart(player, stack); err != nil {
		return err
	}
	return a.shelf.Merge(stack)
}

// checkout purchases the player's whole cart: validates funds, then moves the
// cart into their inventory, records the purchase and debits the balance.
func (a *GroceryStoreArea) checkout(player PlayerID) error {
	cart := a.ledger.Cart(player)
	if cart.IsEmpty() {
		return fmt.Errorf("%w: nothing to check out", ErrItemNotFound)
	}

	total := cart.TotalValue()
	if a.ledger.Balance(player) < total {
		return fmt.Errorf("%w: need %d, have %d", ErrInsufficientFunds, total, a.ledger.Balance(player))
	}

	purchased := a.ledger.EmptyCart(player)
	if err := a.ledger.AddToInventory(player, purchased); err != nil {
		return err
	}
	a.ledger.RecordPurchase(player, purchased)
	a.ledger.AdjustBalance(player, -total)
	return nil
}

// ToModel builds a fresh snapshot of the shelf plus the last actor's cart,
// balance and purchase history.
func (a *GroceryStoreArea) ToModel() *AreaModel {
	m := &AreaModel{
		ID:             a.id,
		Type:           a.kind,
		Occupants:      a.Occupants(),
		StoreInventory: a.shelf.Records(),
	}
	if a.lastActor != "" {
		cart := a.ledger.Cart(a.lastActor)
		m.Cart = cart.Records()
		m.TotalPrice = cart.TotalValue()
		m.Balance = a.ledger.Balance(a.lastActor)
		for _, h := range a.ledger.History(a.lastActor) {
			m.History = append(m.History, h.Records())
		}
	}
	return m
}
