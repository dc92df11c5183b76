package town

import (
	"fmt"
	"slices"
)

// ItemName identifies a commodity in the town's fixed catalog.
type ItemName string

const (
	ItemApple  ItemName = "apple"
	ItemBacon  ItemName = "bacon"
	ItemBanana ItemName = "banana"
	ItemBread  ItemName = "bread"
	ItemButter ItemName = "butter"
	ItemCheese ItemName = "cheese"
	ItemCoffee ItemName = "coffee"
	ItemEggs   ItemName = "eggs"
	ItemHoney  ItemName = "honey"
	ItemMilk   ItemName = "milk"
	ItemRice   ItemName = "rice"
	ItemSugar  ItemName = "sugar"
)

// catalog is the authoritative price table. An item not present here does not
// exist as far as the town is concerned.
var catalog = map[ItemName]int{
	ItemApple:  2,
	ItemBacon:  5,
	ItemBanana: 1,
	ItemBread:  3,
	ItemButter: 4,
	ItemCheese: 6,
	ItemCoffee: 8,
	ItemEggs:   4,
	ItemHoney:  7,
	ItemMilk:   2,
	ItemRice:   2,
	ItemSugar:  3,
}

// DefaultShelfQuantity is the starting stock per catalog item on a freshly
// opened grocery shelf.
const DefaultShelfQuantity = 50

// KnownItem reports whether name is in the catalog.
func KnownItem(name ItemName) bool {
	_, ok := catalog[name]
	return ok
}

// UnitPrice returns the catalog price for name.
func UnitPrice(name ItemName) (int, error) {
	price, ok := catalog[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	return price, nil
}

// CatalogItems returns every known item name in sorted order.
func CatalogItems() []ItemName {
	names := make([]ItemName, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ItemRecord is a named, priced, quantity-bearing commodity. The unit price is
// looked up from the catalog at creation and never changes afterwards.
type ItemRecord struct {
	Name      ItemName `json:"name"`
	UnitPrice int      `json:"unit_price"`
	Quantity  int      `json:"quantity"`
}

func newItemRecord(name ItemName, qty int) (*ItemRecord, error) {
	price, err := UnitPrice(name)
	if err != nil {
		return nil, err
	}
	return &ItemRecord{
		Name:      name,
		UnitPrice: price,
		Quantity:  qty,
	}, nil
}

// Value returns the record's total worth.
func (r *ItemRecord) Value() int {
	return r.UnitPrice * r.Quantity
}
