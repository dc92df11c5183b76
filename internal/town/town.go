package town

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/pixil98/go-town/internal/storage"
)

// PlayerRecord is the town's view of a player: id, display name and current
// location.
type PlayerRecord struct {
	ID       PlayerID
	Name     string
	AreaID   string
	Position Position
}

// Town is the single source of truth for all mutable game state: the player
// ledger, the player roster and every interactable area. Commands are
// processed one at a time to completion - the command is the unit of
// atomicity, and broadcasts go out in the order mutations were applied.
type Town struct {
	mu          sync.Mutex
	ledger      *PlayerLedger
	broadcaster Broadcaster
	areas       map[string]Area
	players     map[PlayerID]*PlayerRecord
}

// NewTown constructs every area from the level data in defs. A malformed
// definition fails town construction immediately rather than producing a
// half-valid area.
func NewTown(ledger *PlayerLedger, b Broadcaster, defs storage.Storer[*AreaDefinition]) (*Town, error) {
	areas := make(map[string]Area)
	for id, def := range defs.GetAll() {
		area, err := newAreaFromDefinition(id, def, ledger, b)
		if err != nil {
			return nil, err
		}
		areas[id] = area
	}

	return &Town{
		ledger:      ledger,
		broadcaster: b,
		areas:       areas,
		players:     make(map[PlayerID]*PlayerRecord),
	}, nil
}

// Ledger returns the town's authoritative player ledger.
func (t *Town) Ledger() *PlayerLedger {
	return t.ledger
}

// Area returns the area with the given id, nil if unknown.
func (t *Town) Area(id string) Area {
	return t.areas[id]
}

// AreaIDs returns every area id in sorted order.
func (t *Town) AreaIDs() []string {
	ids := make([]string, 0, len(t.areas))
	for id := range t.areas {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// AddPlayer registers a player in the town roster.
func (t *Town) AddPlayer(id PlayerID, name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.players[id]; exists {
		return fmt.Errorf("%w: %q", ErrPlayerExists, id)
	}
	t.players[id] = &PlayerRecord{ID: id, Name: name}
	return nil
}

// RemovePlayer drops a player from the roster, leaving their current area
// first.
func (t *Town) RemovePlayer(id PlayerID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, exists := t.players[id]
	if !exists {
		return fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	if rec.AreaID != "" {
		if err := t.leaveLocked(rec); err != nil {
			return err
		}
	}
	delete(t.players, id)
	return nil
}

// Player returns a copy of the player's record.
func (t *Town) Player(id PlayerID) (PlayerRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, exists := t.players[id]
	if !exists {
		return PlayerRecord{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	return *rec, nil
}

// EnterArea moves the player into an area, leaving their previous one if
// needed. Every occupancy mutation broadcasts both an area snapshot and a
// movement event.
func (t *Town) EnterArea(id PlayerID, areaID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, exists := t.players[id]
	if !exists {
		return fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	area, ok := t.areas[areaID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAreaNotFound, areaID)
	}

	if rec.AreaID != "" {
		if err := t.leaveLocked(rec); err != nil {
			return err
		}
	}

	pos := area.Bounds().Center()
	err := area.Enter(&Occupant{ID: id, Name: rec.Name, Position: pos})
	if err != nil {
		return err
	}
	rec.AreaID = areaID
	rec.Position = pos

	if err := t.broadcaster.AreaChanged(area.ToModel()); err != nil {
		return err
	}
	return t.broadcaster.PlayerMoved(&MovementEvent{
		Player:  id,
		Area:    areaID,
		Entered: true,
		Pos:     pos,
	})
}

// LeaveArea removes the player from their current area.
func (t *Town) LeaveArea(id PlayerID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, exists := t.players[id]
	if !exists {
		return fmt.Errorf("%w: %q", ErrPlayerNotFound, id)
	}
	if rec.AreaID == "" {
		return fmt.Errorf("%w: %q is not in an area", ErrAreaNotFound, id)
	}
	return t.leaveLocked(rec)
}

func (t *Town) leaveLocked(rec *PlayerRecord) error {
	area := t.areas[rec.AreaID]
	if err := area.Leave(rec.ID); err != nil {
		return err
	}
	rec.AreaID = ""

	if err := t.broadcaster.AreaChanged(area.ToModel()); err != nil {
		return err
	}
	return t.broadcaster.PlayerMoved(&MovementEvent{
		Player:  rec.ID,
		Area:    area.ID(),
		Entered: false,
		Pos:     rec.Position,
	})
}

// HandleCommand routes one command to its area under the town lock, so no two
// commands ever interleave their mutations.
func (t *Town) HandleCommand(ctx context.Context, areaID string, player PlayerID, cmd Command) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	area, ok := t.areas[areaID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrAreaNotFound, areaID)
	}
	return area.HandleCommand(ctx, player, cmd)
}

// HandleEnvelope decodes and dispatches a wire command.
func (t *Town) HandleEnvelope(ctx context.Context, env *CommandEnvelope) error {
	cmd, err := env.Command()
	if err != nil {
		return err
	}
	return t.HandleCommand(ctx, env.Area, env.Player, cmd)
}
