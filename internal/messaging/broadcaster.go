package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-town/internal/town"
)

// Subject layout: every area has its own snapshot subject, every player a
// private movement subject, and movement events additionally fan out on a
// shared subject for map-level observers.
const (
	CommandSubject  = "town-command"
	MovementSubject = "town-movement"
)

func AreaSubject(areaID string) string {
	return fmt.Sprintf("area-%s", areaID)
}

func PlayerSubject(id town.PlayerID) string {
	return fmt.Sprintf("player-%s", id)
}

// Publisher is the slice of NatsServer the broadcaster needs.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// TownBroadcaster pushes town state changes onto NATS subjects as JSON.
type TownBroadcaster struct {
	pub Publisher
}

func NewTownBroadcaster(pub Publisher) *TownBroadcaster {
	return &TownBroadcaster{pub: pub}
}

// AreaChanged publishes the snapshot on the area's subject.
func (b *TownBroadcaster) AreaChanged(m *town.AreaModel) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshalling area model: %w", err)
	}
	return b.pub.Publish(AreaSubject(m.ID), data)
}

// PlayerMoved publishes the event on the shared movement subject and on the
// moving player's private subject.
func (b *TownBroadcaster) PlayerMoved(e *town.MovementEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshalling movement event: %w", err)
	}
	if err := b.pub.Publish(MovementSubject, data); err != nil {
		return err
	}
	return b.pub.Publish(PlayerSubject(e.Player), data)
}
