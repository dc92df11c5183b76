package town

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func mustList(t *testing.T, stacks ...ItemStack) *ItemList {
	t.Helper()
	l, err := NewItemListOf(stacks...)
	if err != nil {
		t.Fatalf("building list: %v", err)
	}
	return l
}

func TestItemListAdd(t *testing.T) {
	tests := map[string]struct {
		start    []ItemStack
		item     ItemName
		qty      int
		expErr   error
		expQty   int
		expValue int
	}{
		"creates record on first add": {
			item:     ItemBacon,
			qty:      2,
			expQty:   2,
			expValue: 10,
		},
		"merges into existing record": {
			start:    []ItemStack{{Item: ItemBacon, Quantity: 3}},
			item:     ItemBacon,
			qty:      2,
			expQty:   5,
			expValue: 25,
		},
		"rejects zero quantity": {
			item:   ItemBacon,
			qty:    0,
			expErr: ErrNonPositiveQuantity,
		},
		"rejects negative quantity": {
			item:   ItemBacon,
			qty:    -1,
			expErr: ErrNonPositiveQuantity,
		},
		"rejects unknown item": {
			item:   ItemName("plutonium"),
			qty:    1,
			expErr: ErrUnknownItem,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := mustList(t, tt.start...)
			err := l.Add(tt.item, tt.qty)
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "quantity", l.Quantity(tt.item), tt.expQty)
			testutil.AssertEqual(t, "total value", l.TotalValue(), tt.expValue)
		})
	}
}

func TestItemListRemove(t *testing.T) {
	tests := map[string]struct {
		start   []ItemStack
		item    ItemName
		qty     int
		expErr  error
		expQty  int
		expGone bool
	}{
		"decrements in place": {
			start:  []ItemStack{{Item: ItemApple, Quantity: 5}},
			item:   ItemApple,
			qty:    2,
			expQty: 3,
		},
		"deletes record at exactly zero": {
			start:   []ItemStack{{Item: ItemApple, Quantity: 5}},
			item:    ItemApple,
			qty:     5,
			expGone: true,
		},
		"fails when item absent": {
			start:  []ItemStack{{Item: ItemApple, Quantity: 5}},
			item:   ItemBacon,
			qty:    1,
			expErr: ErrItemNotFound,
		},
		"fails when removing more than held": {
			start:  []ItemStack{{Item: ItemApple, Quantity: 5}},
			item:   ItemApple,
			qty:    6,
			expErr: ErrNegativeQuantity,
		},
		"rejects non-positive quantity": {
			start:  []ItemStack{{Item: ItemApple, Quantity: 5}},
			item:   ItemApple,
			qty:    0,
			expErr: ErrNonPositiveQuantity,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := mustList(t, tt.start...)
			before := l.Copy()

			err := l.Remove(tt.item, tt.qty)
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				// A failed removal leaves the list unchanged.
				testutil.AssertEqual(t, "unchanged after failure", l.Equal(before), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "quantity", l.Quantity(tt.item), tt.expQty)
			if tt.expGone {
				// The record must be absent, not present with quantity 0.
				testutil.AssertEqual(t, "record count", len(l.Records()), 0)
			}
		})
	}
}

func TestItemListAddRemoveRoundTrip(t *testing.T) {
	l := mustList(t, ItemStack{Item: ItemMilk, Quantity: 4})
	before := l.Copy()

	if err := l.Add(ItemBread, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := l.Remove(ItemBread, 3); err != nil {
		t.Fatalf("remove: %v", err)
	}

	testutil.AssertEqual(t, "round trip equality", l.Equal(before), true)
}

func TestItemListHasAtLeast(t *testing.T) {
	tests := map[string]struct {
		have []ItemStack
		need []ItemStack
		exp  bool
	}{
		"covers exact quantities": {
			have: []ItemStack{{Item: ItemApple, Quantity: 3}, {Item: ItemBacon, Quantity: 1}},
			need: []ItemStack{{Item: ItemApple, Quantity: 3}},
			exp:  true,
		},
		"fails on short quantity": {
			have: []ItemStack{{Item: ItemApple, Quantity: 2}},
			need: []ItemStack{{Item: ItemApple, Quantity: 3}},
			exp:  false,
		},
		"fails on missing item": {
			have: []ItemStack{{Item: ItemApple, Quantity: 2}},
			need: []ItemStack{{Item: ItemBacon, Quantity: 1}},
			exp:  false,
		},
		"empty need always covered": {
			have: []ItemStack{},
			need: []ItemStack{},
			exp:  true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			have := mustList(t, tt.have...)
			need := mustList(t, tt.need...)
			testutil.AssertEqual(t, "hasAtLeast", have.HasAtLeast(need), tt.exp)
		})
	}
}

func TestItemListSubtractIsAtomic(t *testing.T) {
	l := mustList(t,
		ItemStack{Item: ItemApple, Quantity: 5},
		ItemStack{Item: ItemBacon, Quantity: 1},
	)
	before := l.Copy()

	// Bacon is short, so nothing may change even though apple could be
	// subtracted on its own.
	sub := mustList(t,
		ItemStack{Item: ItemApple, Quantity: 2},
		ItemStack{Item: ItemBacon, Quantity: 3},
	)
	err := l.Subtract(sub)
	if !errors.Is(err, ErrNegativeQuantity) {
		t.Fatalf("expected ErrNegativeQuantity, got %v", err)
	}
	testutil.AssertEqual(t, "unchanged after failed subtract", l.Equal(before), true)
}

func TestItemListMergeSubtract(t *testing.T) {
	l := mustList(t, ItemStack{Item: ItemApple, Quantity: 5})
	other := mustList(t,
		ItemStack{Item: ItemApple, Quantity: 2},
		ItemStack{Item: ItemHoney, Quantity: 1},
	)

	if err := l.Merge(other); err != nil {
		t.Fatalf("merge: %v", err)
	}
	testutil.AssertEqual(t, "apple after merge", l.Quantity(ItemApple), 7)
	testutil.AssertEqual(t, "honey after merge", l.Quantity(ItemHoney), 1)

	if err := l.Subtract(other); err != nil {
		t.Fatalf("subtract: %v", err)
	}
	testutil.AssertEqual(t, "apple after subtract", l.Quantity(ItemApple), 5)
	testutil.AssertEqual(t, "honey gone", l.Quantity(ItemHoney), 0)
}

func TestItemListCopyIsIndependent(t *testing.T) {
	l := mustList(t, ItemStack{Item: ItemApple, Quantity: 5})
	c := l.Copy()

	if err := c.Remove(ItemApple, 5); err != nil {
		t.Fatalf("remove on copy: %v", err)
	}

	testutil.AssertEqual(t, "original untouched", l.Quantity(ItemApple), 5)
	testutil.AssertEqual(t, "copy emptied", c.IsEmpty(), true)
}

func TestItemListTotalValue(t *testing.T) {
	l := mustList(t,
		ItemStack{Item: ItemBacon, Quantity: 2}, // 2*5
		ItemStack{Item: ItemApple, Quantity: 3}, // 3*2
	)
	testutil.AssertEqual(t, "total value", l.TotalValue(), 16)
}
