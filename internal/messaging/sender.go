package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pixil98/go-town/internal/town"
)

// Requester performs a request/reply round trip on a subject.
type Requester interface {
	Request(ctx context.Context, subject string, data []byte) ([]byte, error)
}

// NatsSender sends command envelopes over the command subject and waits for
// the server's reply. It satisfies the controller Sender contract: the call
// returns only after the command was applied or rejected, and a rejection
// surfaces as the returned error.
type NatsSender struct {
	req Requester
}

func NewNatsSender(req Requester) *NatsSender {
	return &NatsSender{req: req}
}

func (s *NatsSender) Send(ctx context.Context, env *town.CommandEnvelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshalling command envelope: %w", err)
	}

	replyData, err := s.req.Request(ctx, CommandSubject, data)
	if err != nil {
		return fmt.Errorf("sending %s command: %w", env.Type, err)
	}

	var reply town.CommandReply
	if err := json.Unmarshal(replyData, &reply); err != nil {
		return fmt.Errorf("unmarshalling command reply: %w", err)
	}
	if !reply.OK {
		return errors.New(reply.Error)
	}
	return nil
}
