// Package controller holds the client-side mirrors of the server areas. Each
// controller caches the last-received model snapshot, diffs incoming
// snapshots field by field, and notifies subscribers only when a value
// actually changed. Controllers perform no validation of their own - every
// command is validated server-side.
package controller

import (
	"context"
	"slices"

	"github.com/pixil98/go-town/internal/town"
)

// EventKind names the model field whose value changed.
type EventKind string

const (
	EventOccupantsChanged  EventKind = "occupants"
	EventShelfChanged      EventKind = "shelf"
	EventCartChanged       EventKind = "cart"
	EventTotalPriceChanged EventKind = "total_price"
	EventBalanceChanged    EventKind = "balance"
	EventHistoryChanged    EventKind = "history"
	EventBoardChanged      EventKind = "board"
	EventInventoryChanged  EventKind = "inventory"
)

// Event is delivered to subscribers when a model field changed. Model is the
// snapshot that produced the change.
type Event struct {
	Kind  EventKind
	Model *town.AreaModel
}

// Sender forwards a command envelope to the server and returns once the
// round trip completes. A failed command surfaces as the returned error.
type Sender interface {
	Send(ctx context.Context, env *town.CommandEnvelope) error
}

// areaController is the shared mirror base: cached model plus an ordered
// subscriber list.
type areaController struct {
	areaID string
	player town.PlayerID
	sender Sender

	model   *town.AreaModel
	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn func(Event)
}

func newAreaController(areaID string, player town.PlayerID, sender Sender) areaController {
	return areaController{
		areaID: areaID,
		player: player,
		sender: sender,
	}
}

// Model returns the last-received snapshot, nil before the first update.
// Snapshots are fully owned by the controller; callers must treat them as
// read-only.
func (c *areaController) Model() *town.AreaModel {
	return c.model
}

// Subscribe registers fn for change events and returns an unsubscribe handle.
// A subscriber added after a broadcast began does not receive that snapshot.
func (c *areaController) Subscribe(fn func(Event)) func() {
	id := c.nextSub
	c.nextSub++
	c.subs = append(c.subs, subscription{id: id, fn: fn})

	return func() {
		c.subs = slices.DeleteFunc(c.subs, func(s subscription) bool {
			return s.id == id
		})
	}
}

// emit delivers kinds to the subscribers registered before the broadcast
// began, in subscription order. The list is cloned up front so a subscriber
// added mid-delivery never sees the in-flight snapshot.
func (c *areaController) emit(m *town.AreaModel, kinds []EventKind) {
	subs := slices.Clone(c.subs)
	for _, kind := range kinds {
		for _, s := range subs {
			s.fn(Event{Kind: kind, Model: m})
		}
	}
}

// send wraps cmd in an envelope for this controller's area and player.
func (c *areaController) send(ctx context.Context, cmd town.Command) error {
	env, err := town.NewCommandEnvelope(c.areaID, c.player, cmd)
	if err != nil {
		return err
	}
	return c.sender.Send(ctx, env)
}

// Field comparison helpers. Model slices are sorted server-side, so direct
// element comparison is deterministic.

func recordsEqual(a, b []town.ItemRecord) bool {
	return slices.Equal(a, b)
}

func historiesEqual(a, b [][]town.ItemRecord) bool {
	return slices.EqualFunc(a, b, recordsEqual)
}

func occupantsEqual(a, b []town.PlayerID) bool {
	return slices.Equal(a, b)
}

func offersEqual(a, b []town.TradeOfferModel) bool {
	return slices.EqualFunc(a, b, func(x, y town.TradeOfferModel) bool {
		return x.ID == y.ID &&
			x.Initiator == y.Initiator &&
			x.Acceptor == y.Acceptor &&
			x.Completed == y.Completed &&
			recordsEqual(x.Offered, y.Offered) &&
			recordsEqual(x.Wanted, y.Wanted)
	})
}
