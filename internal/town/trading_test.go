package town

import (
	"context"
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func newTestTrading(t *testing.T) (*TradingArea, *PlayerLedger, *recordingBroadcaster) {
	t.Helper()
	ledger := NewPlayerLedger(0)
	b := &recordingBroadcaster{}
	area := NewTradingArea("trading", Rect{Width: 8, Height: 6}, ledger, b)
	return area, ledger, b
}

func seedInventory(t *testing.T, ledger *PlayerLedger, id PlayerID, stacks ...ItemStack) {
	t.Helper()
	if err := ledger.AddToInventory(id, mustList(t, stacks...)); err != nil {
		t.Fatalf("seeding %s: %v", id, err)
	}
}

func TestTradingPostOffer(t *testing.T) {
	tests := map[string]struct {
		inventory []ItemStack
		offered   []ItemStack
		wanted    []ItemStack
		expErr    error
	}{
		"reserves offered items": {
			inventory: []ItemStack{{Item: ItemApple, Quantity: 5}},
			offered:   []ItemStack{{Item: ItemApple, Quantity: 5}},
			wanted:    []ItemStack{{Item: ItemBanana, Quantity: 3}},
		},
		"empty offered side": {
			offered: []ItemStack{},
			wanted:  []ItemStack{{Item: ItemBanana, Quantity: 3}},
			expErr:  ErrInvalidOffer,
		},
		"malformed offered item": {
			offered: []ItemStack{{Item: ItemName("plutonium"), Quantity: 1}},
			wanted:  []ItemStack{{Item: ItemBanana, Quantity: 3}},
			expErr:  ErrInvalidOffer,
		},
		"initiator lacks offered items": {
			inventory: []ItemStack{{Item: ItemApple, Quantity: 2}},
			offered:   []ItemStack{{Item: ItemApple, Quantity: 5}},
			wanted:    []ItemStack{{Item: ItemBanana, Quantity: 3}},
			expErr:    ErrInsufficientInventory,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			area, ledger, b := newTestTrading(t)
			if len(tt.inventory) > 0 {
				seedInventory(t, ledger, "ava", tt.inventory...)
			}

			err := area.HandleCommand(context.Background(), "ava", &PostOffer{Offered: tt.offered, Wanted: tt.wanted})
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				testutil.AssertEqual(t, "board empty", len(area.Board()), 0)
				testutil.AssertEqual(t, "no broadcast", len(b.models), 0)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "offer on board", len(area.Board()), 1)
			// Offered items are debited immediately so they cannot be
			// double-offered.
			testutil.AssertEqual(t, "reserved from inventory", ledger.Inventory("ava").Quantity(ItemApple), 0)
			testutil.AssertEqual(t, "one broadcast", len(b.models), 1)
			testutil.AssertEqual(t, "board in model", len(b.models[0].TradingBoard), 1)
		})
	}
}

func TestTradingAcceptOffer(t *testing.T) {
	area, ledger, b := newTestTrading(t)
	ctx := context.Background()

	// Player A posts {apple x5 for banana x3}; player B holds banana x3.
	seedInventory(t, ledger, "ava", ItemStack{Item: ItemApple, Quantity: 5})
	seedInventory(t, ledger, "ben", ItemStack{Item: ItemBanana, Quantity: 3})

	if err := area.HandleCommand(ctx, "ava", &PostOffer{
		Offered: []ItemStack{{Item: ItemApple, Quantity: 5}},
		Wanted:  []ItemStack{{Item: ItemBanana, Quantity: 3}},
	}); err != nil {
		t.Fatalf("post: %v", err)
	}
	offerID := area.Board()[0].ID
	b.reset()

	if err := area.HandleCommand(ctx, "ben", &AcceptOffer{OfferID: offerID}); err != nil {
		t.Fatalf("accept: %v", err)
	}

	testutil.AssertEqual(t, "board cleared", len(area.Board()), 0)
	testutil.AssertEqual(t, "initiator gains wanted", ledger.Inventory("ava").Quantity(ItemBanana), 3)
	testutil.AssertEqual(t, "acceptor gains offered", ledger.Inventory("ben").Quantity(ItemApple), 5)
	testutil.AssertEqual(t, "acceptor pays wanted", ledger.Inventory("ben").Quantity(ItemBanana), 0)
	testutil.AssertEqual(t, "one broadcast", len(b.models), 1)

	// First accept wins; a repeat attempt fails rather than no-oping.
	err := area.HandleCommand(ctx, "cleo", &AcceptOffer{OfferID: offerID})
	if !errors.Is(err, ErrOfferNotFound) {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}
	// And the inventories are not double-applied.
	testutil.AssertEqual(t, "no double credit", ledger.Inventory("ben").Quantity(ItemApple), 5)
}

func TestTradingAcceptValidation(t *testing.T) {
	area, ledger, _ := newTestTrading(t)
	ctx := context.Background()

	seedInventory(t, ledger, "ava", ItemStack{Item: ItemApple, Quantity: 5})
	if err := area.HandleCommand(ctx, "ava", &PostOffer{
		Offered: []ItemStack{{Item: ItemApple, Quantity: 5}},
		Wanted:  []ItemStack{{Item: ItemBanana, Quantity: 3}},
	}); err != nil {
		t.Fatalf("post: %v", err)
	}
	offerID := area.Board()[0].ID

	// Initiators cannot take their own offers.
	err := area.HandleCommand(ctx, "ava", &AcceptOffer{OfferID: offerID})
	if !errors.Is(err, ErrOwnOffer) {
		t.Fatalf("expected ErrOwnOffer, got %v", err)
	}

	// An acceptor without the wanted items fails before any ledger mutation.
	err = area.HandleCommand(ctx, "ben", &AcceptOffer{OfferID: offerID})
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("expected ErrInsufficientInventory, got %v", err)
	}
	testutil.AssertEqual(t, "offer still open", len(area.Board()), 1)
	testutil.AssertEqual(t, "initiator not credited", ledger.Inventory("ava").Quantity(ItemBanana), 0)
}

func TestTradingDeleteOffer(t *testing.T) {
	area, ledger, b := newTestTrading(t)
	ctx := context.Background()

	seedInventory(t, ledger, "ava", ItemStack{Item: ItemApple, Quantity: 5})
	if err := area.HandleCommand(ctx, "ava", &PostOffer{
		Offered: []ItemStack{{Item: ItemApple, Quantity: 5}},
		Wanted:  []ItemStack{{Item: ItemBanana, Quantity: 3}},
	}); err != nil {
		t.Fatalf("post: %v", err)
	}
	b.reset()

	if err := area.HandleCommand(ctx, "ava", &DeleteOffer{}); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// Pre-post state is restored.
	testutil.AssertEqual(t, "board cleared", len(area.Board()), 0)
	testutil.AssertEqual(t, "items returned", ledger.Inventory("ava").Quantity(ItemApple), 5)
	testutil.AssertEqual(t, "one broadcast", len(b.models), 1)

	err := area.HandleCommand(ctx, "ava", &DeleteOffer{})
	if !errors.Is(err, ErrOfferNotFound) {
		t.Fatalf("expected ErrOfferNotFound, got %v", err)
	}
}

func TestTradingOpenBoard(t *testing.T) {
	area, _, b := newTestTrading(t)

	if err := area.HandleCommand(context.Background(), "ava", &OpenBoard{}); err != nil {
		t.Fatalf("open board: %v", err)
	}
	testutil.AssertEqual(t, "snapshot broadcast", len(b.models), 1)
	testutil.AssertEqual(t, "model type", b.models[0].Type, AreaKindTrading)
}

func TestTradingRejectsForeignCommands(t *testing.T) {
	area, _, _ := newTestTrading(t)

	err := area.HandleCommand(context.Background(), "ava", &Checkout{})
	if !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("expected ErrInvalidCommand, got %v", err)
	}
}
