package messaging

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pixil98/go-town/internal/town"
)

// CommandResponder services the command subject: each request is a
// CommandEnvelope, each reply a CommandReply. Commands run against the town
// one at a time; the reply is sent only after the command fully completed.
type CommandResponder struct {
	server *NatsServer
	town   *town.Town
}

func NewCommandResponder(server *NatsServer, t *town.Town) *CommandResponder {
	return &CommandResponder{
		server: server,
		town:   t,
	}
}

func (r *CommandResponder) Start(ctx context.Context) error {
	if err := r.server.WaitReady(ctx); err != nil {
		return err
	}

	unsubscribe, err := r.server.SubscribeRequest(CommandSubject, func(data []byte) []byte {
		return r.handle(ctx, data)
	})
	if err != nil {
		return err
	}
	defer unsubscribe()

	slog.InfoContext(ctx, "command responder listening", "subject", CommandSubject)
	<-ctx.Done()
	return nil
}

func (r *CommandResponder) handle(ctx context.Context, data []byte) []byte {
	var env town.CommandEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return marshalReply(ctx, &town.CommandReply{Error: "malformed command envelope"})
	}

	reply := &town.CommandReply{OK: true}
	if err := r.town.HandleEnvelope(ctx, &env); err != nil {
		slog.DebugContext(ctx, "command rejected",
			"area", env.Area,
			"player", env.Player,
			"type", env.Type,
			"error", err,
		)
		reply.OK = false
		reply.Error = err.Error()
	}
	return marshalReply(ctx, reply)
}

func marshalReply(ctx context.Context, reply *town.CommandReply) []byte {
	data, err := json.Marshal(reply)
	if err != nil {
		// A CommandReply always marshals; this is unreachable short of a
		// corrupted runtime.
		slog.ErrorContext(ctx, "marshalling command reply", "error", err)
		return []byte(`{"ok":false,"error":"internal error"}`)
	}
	return data
}
