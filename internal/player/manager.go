package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pixil98/go-town/internal/controller"
	"github.com/pixil98/go-town/internal/storage"
	"github.com/pixil98/go-town/internal/town"
)

const DefaultIdleTimeout = 15 * time.Minute

// PlayerManager owns the connected sessions: it logs players in, registers
// them with the town, and sweeps idle connections on every driver tick.
type PlayerManager struct {
	town   *town.Town
	sender controller.Sender
	sub    Subscriber
	chars  storage.Storer[*Character]

	loginFlow   *loginFlow
	idleTimeout time.Duration

	mu       sync.Mutex
	sessions map[town.PlayerID]*session
}

func NewPlayerManager(t *town.Town, sender controller.Sender, sub Subscriber, cs storage.Storer[*Character], idleTimeout time.Duration) *PlayerManager {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}

	return &PlayerManager{
		town:        t,
		sender:      sender,
		sub:         sub,
		chars:       cs,
		loginFlow:   &loginFlow{cStore: cs},
		idleTimeout: idleTimeout,
		sessions:    map[town.PlayerID]*session{},
	}
}

func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.disconnect()
	}
	return nil
}

// Tick disconnects sessions that have been idle past the timeout.
func (m *PlayerManager) Tick(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if time.Since(s.idleSince()) > m.idleTimeout {
			slog.InfoContext(ctx, "disconnecting idle player", "player", id)
			s.disconnect()
		}
	}
	return nil
}

// RunSession drives one connection from login through quit. It returns once
// the player is gone and removed from the town.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	char, err := m.loginFlow.Run(conn)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	if err := m.chars.Save(strings.ToLower(char.Name), char); err != nil {
		return fmt.Errorf("saving character: %w", err)
	}

	id := town.PlayerID(strings.ToLower(char.Name))
	if err := m.town.AddPlayer(id, char.Name); err != nil {
		if errors.Is(err, town.ErrPlayerExists) {
			conn.Write([]byte("That character is already in town.\n"))
			return nil
		}
		return err
	}

	s := newSession(id, char.Name, conn, m.town, m.sender, m.sub)
	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()

		if err := m.town.RemovePlayer(id); err != nil {
			slog.WarnContext(ctx, "removing player from town", "player", id, "error", err)
		}
	}()

	return s.Play(ctx)
}
