package town

import (
	"context"
	"fmt"
	"slices"
)

// Rect is an area's bounding box in level coordinates.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Position {
	return Position{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Position is a player's live location in level coordinates.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Occupant is a present player's record: id, display name and live position.
type Occupant struct {
	ID       PlayerID
	Name     string
	Position Position
}

// Broadcaster pushes state to every subscriber of an area. Fan-out is
// synchronous and ordered: every subscriber sees the same snapshots in the
// order mutations were applied.
type Broadcaster interface {
	// AreaChanged publishes a fresh model snapshot for the area.
	AreaChanged(model *AreaModel) error

	// PlayerMoved publishes an occupancy change.
	PlayerMoved(move *MovementEvent) error
}

// Area is one interactable server-side area: it holds authoritative mutable
// state, validates and applies commands, and broadcasts the resulting
// snapshots. Commands are the unit of atomicity - a command either completes
// and broadcasts, or fails and leaves state unchanged.
type Area interface {
	ID() string
	Kind() AreaKind
	Bounds() Rect
	IsActive() bool
	Occupants() []PlayerID

	// Enter and Leave mutate the occupancy set. The caller broadcasts.
	Enter(occ *Occupant) error
	Leave(id PlayerID) error

	// HandleCommand validates cmd against current state, applies it and
	// broadcasts the result. Unrecognized commands fail with
	// ErrInvalidCommand.
	HandleCommand(ctx context.Context, player PlayerID, cmd Command) error

	// ToModel builds a fresh, fully-owned wire snapshot.
	ToModel() *AreaModel
}

// occupancy is the shared spatial base embedded in every area: who is
// currently standing in it, and where.
type occupancy struct {
	id        string
	kind      AreaKind
	bounds    Rect
	occupants map[PlayerID]*Occupant
}

func newOccupancy(id string, kind AreaKind, bounds Rect) occupancy {
	return occupancy{
		id:        id,
		kind:      kind,
		bounds:    bounds,
		occupants: make(map[PlayerID]*Occupant),
	}
}

func (o *occupancy) ID() string {
	return o.id
}

func (o *occupancy) Kind() AreaKind {
	return o.kind
}

func (o *occupancy) Bounds() Rect {
	return o.bounds
}

// IsActive reports whether anyone is standing in the area.
func (o *occupancy) IsActive() bool {
	return len(o.occupants) > 0
}

// Occupants returns the present player ids in sorted order.
func (o *occupancy) Occupants() []PlayerID {
	ids := make([]PlayerID, 0, len(o.occupants))
	for id := range o.occupants {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (o *occupancy) Enter(occ *Occupant) error {
	if _, exists := o.occupants[occ.ID]; exists {
		return fmt.Errorf("%w: %q in area %q", ErrPlayerExists, occ.ID, o.id)
	}
	o.occupants[occ.ID] = occ
	return nil
}

func (o *occupancy) Leave(id PlayerID) error {
	if _, exists := o.occupants[id]; !exists {
		return fmt.Errorf("%w: %q in area %q", ErrPlayerNotFound, id, o.id)
	}
	delete(o.occupants, id)
	return nil
}

// newAreaFromDefinition builds the concrete area for a validated definition.
func newAreaFromDefinition(id string, def *AreaDefinition, ledger *PlayerLedger, b Broadcaster) (Area, error) {
	if err := def.Validate(); err != nil {
		return nil, fmt.Errorf("area %q: %w", id, err)
	}

	switch def.AreaKind() {
	case AreaKindGrocery:
		return NewGroceryStoreArea(id, def.Bounds(), ledger, b), nil
	case AreaKindTrading:
		return NewTradingArea(id, def.Bounds(), ledger, b), nil
	case AreaKindInventory:
		return NewInventoryArea(id, def.Bounds(), ledger, b), nil
	default:
		return nil, fmt.Errorf("area %q: %w: kind %q", id, ErrMalformedAreaDefinition, def.Kind)
	}
}
