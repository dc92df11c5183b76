package town

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestGrocery(t *testing.T, balance int) (*GroceryStoreArea, *PlayerLedger, *recordingBroadcaster) {
	t.Helper()
	ledger := NewPlayerLedger(balance)
	b := &recordingBroadcaster{}
	area := NewGroceryStoreArea("grocery", Rect{Width: 10, Height: 10}, ledger, b)
	return area, ledger, b
}

func TestGroceryOpenStore(t *testing.T) {
	area, _, b := newTestGrocery(t, 0)

	if err := area.HandleCommand(context.Background(), "ava", &OpenStore{}); err != nil {
		t.Fatalf("open store: %v", err)
	}

	testutil.AssertEqual(t, "one snapshot", len(b.models), 1)
	m := b.models[0]
	testutil.AssertEqual(t, "model id", m.ID, "grocery")
	testutil.AssertEqual(t, "model type", m.Type, AreaKindGrocery)
	testutil.AssertEqual(t, "catalog on shelf", len(m.StoreInventory), len(CatalogItems()))
	testutil.AssertEqual(t, "shelf seeded", m.StoreInventory[0].Quantity, DefaultShelfQuantity)
}

func TestGroceryAddToCart(t *testing.T) {
	tests := map[string]struct {
		shelfBacon int // removed from shelf before the test
		item       ItemName
		qty        int
		expErr     error
		expShelf   int
		expCart    int
	}{
		"moves shelf stock into cart": {
			item:     ItemBacon,
			qty:      5,
			expShelf: 45,
			expCart:  5,
		},
		"zero quantity defaults to one": {
			item:     ItemBacon,
			qty:      0,
			expShelf: 49,
			expCart:  1,
		},
		"insufficient shelf quantity": {
			item:   ItemBacon,
			qty:    51,
			expErr: ErrItemNotFound,
		},
		"unknown item": {
			item:   ItemName("plutonium"),
			qty:    1,
			expErr: ErrItemNotFound,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			area, ledger, b := newTestGrocery(t, 0)

			err := area.HandleCommand(context.Background(), "ava", &AddToCart{Item: tt.item, Quantity: tt.qty})
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				testutil.AssertEqual(t, "no broadcast on failure", len(b.models), 0)
				testutil.AssertEqual(t, "shelf unchanged", area.Shelf().Quantity(ItemBacon), 50)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "shelf stock", area.Shelf().Quantity(tt.item), tt.expShelf)
			testutil.AssertEqual(t, "cart stock", ledger.Cart("ava").Quantity(tt.item), tt.expCart)
			// Exactly one change event per applied command.
			testutil.AssertEqual(t, "one broadcast", len(b.models), 1)
		})
	}
}

func TestGroceryRemoveFromCart(t *testing.T) {
	area, ledger, b := newTestGrocery(t, 0)
	ctx := context.Background()

	if err := area.HandleCommand(ctx, "ava", &AddToCart{Item: ItemBacon, Quantity: 3}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	b.reset()

	if err := area.HandleCommand(ctx, "ava", &RemoveFromCart{Item: ItemBacon, Quantity: 2}); err != nil {
		t.Fatalf("remove from cart: %v", err)
	}
	testutil.AssertEqual(t, "shelf restored", area.Shelf().Quantity(ItemBacon), 49)
	testutil.AssertEqual(t, "cart reduced", ledger.Cart("ava").Quantity(ItemBacon), 1)
	testutil.AssertEqual(t, "one broadcast", len(b.models), 1)

	// Removing something the cart never held fails without mutation.
	err := area.HandleCommand(ctx, "ava", &RemoveFromCart{Item: ItemMilk, Quantity: 1})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	testutil.AssertEqual(t, "shelf untouched by failure", area.Shelf().Quantity(ItemMilk), 50)
}

func TestGroceryCheckout(t *testing.T) {
	area, ledger, b := newTestGrocery(t, 100)
	ctx := context.Background()

	// Cart: one bacon at price 5, balance 100.
	if err := area.HandleCommand(ctx, "ava", &AddToCart{Item: ItemBacon, Quantity: 1}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	b.reset()

	if err := area.HandleCommand(ctx, "ava", &Checkout{}); err != nil {
		t.Fatalf("checkout: %v", err)
	}

	testutil.AssertEqual(t, "balance debited", ledger.Balance("ava"), 95)
	testutil.AssertEqual(t, "bacon in inventory", ledger.Inventory("ava").Quantity(ItemBacon), 1)
	testutil.AssertEqual(t, "cart emptied", ledger.Cart("ava").IsEmpty(), true)

	hist := ledger.History("ava")
	testutil.AssertEqual(t, "one history entry", len(hist), 1)
	testutil.AssertEqual(t, "history equals pre-checkout cart", hist[0].Quantity(ItemBacon), 1)

	m := b.models[len(b.models)-1]
	testutil.AssertEqual(t, "model cart empty", len(m.Cart), 0)
	testutil.AssertEqual(t, "model balance", m.Balance, 95)
}

func TestGroceryCheckoutInsufficientFunds(t *testing.T) {
	area, ledger, b := newTestGrocery(t, 3)
	ctx := context.Background()

	if err := area.HandleCommand(ctx, "ava", &AddToCart{Item: ItemBacon, Quantity: 1}); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	b.reset()

	err := area.HandleCommand(ctx, "ava", &Checkout{})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The whole command aborts: cart, inventory and balance are untouched.
	testutil.AssertEqual(t, "cart kept", ledger.Cart("ava").Quantity(ItemBacon), 1)
	testutil.AssertEqual(t, "inventory empty", ledger.Inventory("ava").IsEmpty(), true)
	testutil.AssertEqual(t, "balance kept", ledger.Balance("ava"), 3)
	testutil.AssertEqual(t, "no history entry", len(ledger.History("ava")), 0)
	testutil.AssertEqual(t, "no broadcast", len(b.models), 0)
}

func TestGroceryCheckoutEmptyCart(t *testing.T) {
	area, _, _ := newTestGrocery(t, 100)

	err := area.HandleCommand(context.Background(), "ava", &Checkout{})
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestGroceryRejectsForeignCommands(t *testing.T) {
	area, _, _ := newTestGrocery(t, 0)

	err := area.HandleCommand(context.Background(), "ava", &PostOffer{})
	if !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("expected ErrInvalidCommand, got %v", err)
	}
}
