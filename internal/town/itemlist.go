package town

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ItemList is an unordered collection of item records, unique by name.
// Quantities merge on add and split on remove; a record whose quantity reaches
// exactly zero is deleted from the list. A list is owned by exactly one holder
// (shelf, inventory, cart, offer side, or history entry) - items moving
// between holders are copied, never shared by reference.
type ItemList struct {
	records map[ItemName]*ItemRecord
}

// NewItemList creates an empty item list.
func NewItemList() *ItemList {
	return &ItemList{records: make(map[ItemName]*ItemRecord)}
}

// NewItemListOf builds a list from name/quantity pairs. Handy for seeding and
// tests; fails on unknown items or non-positive quantities.
func NewItemListOf(stacks ...ItemStack) (*ItemList, error) {
	l := NewItemList()
	for _, s := range stacks {
		if err := l.Add(s.Item, s.Quantity); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// ItemStack is a name/quantity pair used to describe list contents on the wire.
type ItemStack struct {
	Item     ItemName `json:"item"`
	Quantity int      `json:"quantity"`
}

// Add merges qty of name into the list, creating the record on first add.
func (l *ItemList) Add(name ItemName, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveQuantity, qty)
	}
	if rec, ok := l.records[name]; ok {
		rec.Quantity += qty
		return nil
	}
	rec, err := newItemRecord(name, qty)
	if err != nil {
		return err
	}
	l.records[name] = rec
	return nil
}

// Remove decrements qty of name. The record is deleted when its quantity
// reaches exactly zero. A failed removal leaves the list unchanged.
func (l *ItemList) Remove(name ItemName, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: got %d", ErrNonPositiveQuantity, qty)
	}
	rec, ok := l.records[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotFound, name)
	}
	if qty > rec.Quantity {
		return fmt.Errorf("%w: %q has %d, tried to remove %d", ErrNegativeQuantity, name, rec.Quantity, qty)
	}
	rec.Quantity -= qty
	if rec.Quantity == 0 {
		delete(l.records, name)
	}
	return nil
}

// Quantity returns the held quantity of name, zero if absent.
func (l *ItemList) Quantity(name ItemName) int {
	if rec, ok := l.records[name]; ok {
		return rec.Quantity
	}
	return 0
}

// TotalValue sums unit price times quantity over all records.
func (l *ItemList) TotalValue() int {
	total := 0
	for _, rec := range l.records {
		total += rec.Value()
	}
	return total
}

// IsEmpty reports whether the list holds no records.
func (l *ItemList) IsEmpty() bool {
	return len(l.records) == 0
}

// HasAtLeast reports whether this list covers every record in other, i.e. for
// each of other's records this list holds at least that quantity. Used as the
// feasibility pre-check before Subtract.
func (l *ItemList) HasAtLeast(other *ItemList) bool {
	if other == nil {
		return true
	}
	for name, rec := range other.records {
		if l.Quantity(name) < rec.Quantity {
			return false
		}
	}
	return true
}

// Merge adds every record of other into this list. Other is not modified.
func (l *ItemList) Merge(other *ItemList) error {
	if other == nil {
		return nil
	}
	for name, rec := range other.records {
		if err := l.Add(name, rec.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Subtract removes every record of other from this list. The whole operation
// is validated before any record is touched, so a failure never leaves the
// list partially mutated.
func (l *ItemList) Subtract(other *ItemList) error {
	if other == nil {
		return nil
	}
	for name, rec := range other.records {
		held, ok := l.records[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrItemNotFound, name)
		}
		if rec.Quantity > held.Quantity {
			return fmt.Errorf("%w: %q has %d, tried to remove %d", ErrNegativeQuantity, name, held.Quantity, rec.Quantity)
		}
	}
	for name, rec := range other.records {
		if err := l.Remove(name, rec.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// Copy returns a deep copy sharing no records with the original.
func (l *ItemList) Copy() *ItemList {
	c := NewItemList()
	for name, rec := range l.records {
		dup := *rec
		c.records[name] = &dup
	}
	return c
}

// Equal reports whether both lists hold the same records and quantities.
func (l *ItemList) Equal(other *ItemList) bool {
	if other == nil {
		return l.IsEmpty()
	}
	if len(l.records) != len(other.records) {
		return false
	}
	for name, rec := range l.records {
		if other.Quantity(name) != rec.Quantity {
			return false
		}
	}
	return true
}

// Records returns a sorted, fully-owned copy of the list's records.
func (l *ItemList) Records() []ItemRecord {
	recs := make([]ItemRecord, 0, len(l.records))
	for _, rec := range l.records {
		recs = append(recs, *rec)
	}
	slices.SortFunc(recs, func(a, b ItemRecord) int {
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
	return recs
}

// MarshalJSON encodes the list as a sorted record array.
func (l *ItemList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Records())
}

// UnmarshalJSON decodes a record array, re-resolving prices from the catalog.
func (l *ItemList) UnmarshalJSON(data []byte) error {
	var recs []ItemRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return err
	}
	l.records = make(map[ItemName]*ItemRecord, len(recs))
	for _, rec := range recs {
		if err := l.Add(rec.Name, rec.Quantity); err != nil {
			return err
		}
	}
	return nil
}
