package town

import (
	"encoding/json"
	"fmt"
)

// CommandEnvelope is the wire form of a command: which area it addresses, who
// issued it, and the tagged command payload.
type CommandEnvelope struct {
	Area    string          `json:"area"`
	Player  PlayerID        `json:"player"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewCommandEnvelope wraps cmd for the wire.
func NewCommandEnvelope(area string, player PlayerID, cmd Command) (*CommandEnvelope, error) {
	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("marshalling %s payload: %w", cmd.CommandType(), err)
	}
	return &CommandEnvelope{
		Area:    area,
		Player:  player,
		Type:    cmd.CommandType(),
		Payload: payload,
	}, nil
}

// Command decodes the envelope's payload back into a concrete command.
// Unknown tags fail with ErrInvalidCommand.
func (e *CommandEnvelope) Command() (Command, error) {
	var cmd Command
	switch e.Type {
	case OpenStore{}.CommandType():
		cmd = &OpenStore{}
	case AddToCart{}.CommandType():
		cmd = &AddToCart{}
	case RemoveFromCart{}.CommandType():
		cmd = &RemoveFromCart{}
	case Checkout{}.CommandType():
		cmd = &Checkout{}
	case OpenInventory{}.CommandType():
		cmd = &OpenInventory{}
	case OpenBoard{}.CommandType():
		cmd = &OpenBoard{}
	case PostOffer{}.CommandType():
		cmd = &PostOffer{}
	case AcceptOffer{}.CommandType():
		cmd = &AcceptOffer{}
	case DeleteOffer{}.CommandType():
		cmd = &DeleteOffer{}
	default:
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidCommand, e.Type)
	}

	if len(e.Payload) > 0 {
		if err := json.Unmarshal(e.Payload, cmd); err != nil {
			return nil, fmt.Errorf("unmarshalling %s payload: %w", e.Type, err)
		}
	}
	return cmd, nil
}

// CommandReply is the wire form of a command result. A failed command carries
// the failure text; the client surfaces it as a user-visible notice.
type CommandReply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}
