package town

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestNewTradeOffer(t *testing.T) {
	tests := map[string]struct {
		offered []ItemStack
		wanted  []ItemStack
		expErr  error
	}{
		"valid offer": {
			offered: []ItemStack{{Item: ItemApple, Quantity: 5}},
			wanted:  []ItemStack{{Item: ItemBanana, Quantity: 3}},
		},
		"empty offered side": {
			offered: []ItemStack{},
			wanted:  []ItemStack{{Item: ItemBanana, Quantity: 3}},
			expErr:  ErrInvalidOffer,
		},
		"empty wanted side": {
			offered: []ItemStack{{Item: ItemApple, Quantity: 5}},
			wanted:  []ItemStack{},
			expErr:  ErrInvalidOffer,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			offer, err := NewTradeOffer("ava", mustList(t, tt.offered...), mustList(t, tt.wanted...))
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if offer.ID == "" {
				t.Error("expected offer id to be set")
			}
			testutil.AssertEqual(t, "initiator", offer.Initiator, PlayerID("ava"))
			testutil.AssertEqual(t, "completed", offer.Completed, false)
		})
	}
}

func TestTradeOfferOwnsCopies(t *testing.T) {
	offered := mustList(t, ItemStack{Item: ItemApple, Quantity: 5})
	offer, err := NewTradeOffer("ava", offered, mustList(t, ItemStack{Item: ItemBanana, Quantity: 3}))
	if err != nil {
		t.Fatalf("new offer: %v", err)
	}

	if err := offered.Remove(ItemApple, 5); err != nil {
		t.Fatalf("remove: %v", err)
	}
	testutil.AssertEqual(t, "offer side isolated", offer.Offered.Quantity(ItemApple), 5)
}

func TestTradeOfferAcceptOnce(t *testing.T) {
	offer, err := NewTradeOffer("ava",
		mustList(t, ItemStack{Item: ItemApple, Quantity: 5}),
		mustList(t, ItemStack{Item: ItemBanana, Quantity: 3}),
	)
	if err != nil {
		t.Fatalf("new offer: %v", err)
	}

	if err := offer.Accept("ben"); err != nil {
		t.Fatalf("first accept: %v", err)
	}
	testutil.AssertEqual(t, "acceptor", offer.Acceptor, PlayerID("ben"))
	testutil.AssertEqual(t, "completed", offer.Completed, true)

	err = offer.Accept("cleo")
	if !errors.Is(err, ErrTradeAlreadyCompleted) {
		t.Fatalf("expected ErrTradeAlreadyCompleted, got %v", err)
	}
	// The losing accept must not overwrite the winner.
	testutil.AssertEqual(t, "acceptor unchanged", offer.Acceptor, PlayerID("ben"))
}

func TestTradeOfferAcceptValidation(t *testing.T) {
	offer, err := NewTradeOffer("ava",
		mustList(t, ItemStack{Item: ItemApple, Quantity: 1}),
		mustList(t, ItemStack{Item: ItemBanana, Quantity: 1}),
	)
	if err != nil {
		t.Fatalf("new offer: %v", err)
	}

	if err := offer.Accept(""); !errors.Is(err, ErrAcceptorNotSet) {
		t.Fatalf("expected ErrAcceptorNotSet, got %v", err)
	}
	if err := offer.Accept("ava"); !errors.Is(err, ErrOwnOffer) {
		t.Fatalf("expected ErrOwnOffer, got %v", err)
	}
	testutil.AssertEqual(t, "still open", offer.Completed, false)
}
