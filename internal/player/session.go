package player

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pixil98/go-town/internal/controller"
	"github.com/pixil98/go-town/internal/display"
	"github.com/pixil98/go-town/internal/messaging"
	"github.com/pixil98/go-town/internal/town"
)

// errQuit signals a clean, player-requested session end.
var errQuit = errors.New("quit")

// Subscriber provides push subscriptions on broadcast subjects.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (func(), error)
}

// mirror is the controller surface the session uses regardless of area kind.
type mirror interface {
	UpdateFrom(m *town.AreaModel)
	Subscribe(fn func(controller.Event)) func()
}

// session is one connected player: a console loop wired to the town through
// the command sender and the broadcast subjects. Incoming snapshots are
// funneled through the models channel so controller state is only ever touched
// from the Play goroutine.
type session struct {
	id     town.PlayerID
	name   string
	conn   io.ReadWriter
	town   *town.Town
	sender controller.Sender
	sub    Subscriber

	models  chan *town.AreaModel
	notices chan string
	done    chan struct{}
	kick    sync.Once

	lastActive atomic.Int64

	areaID     string
	mirror     mirror
	mirrorStop func()
	grocery    *controller.GroceryController
	trading    *controller.TradingController
	inventory  *controller.InventoryController
	lastShown  *town.AreaModel
}

func newSession(id town.PlayerID, name string, conn io.ReadWriter, t *town.Town, sender controller.Sender, sub Subscriber) *session {
	s := &session{
		id:      id,
		name:    name,
		conn:    conn,
		town:    t,
		sender:  sender,
		sub:     sub,
		models:  make(chan *town.AreaModel, 16),
		notices: make(chan string, 16),
		done:    make(chan struct{}),
	}
	s.touch()
	return s
}

func (s *session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

func (s *session) idleSince() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// disconnect kicks the session out of its Play loop. Safe to call more than
// once.
func (s *session) disconnect() {
	s.kick.Do(func() { close(s.done) })
}

func (s *session) Play(ctx context.Context) error {
	stopMoves, err := s.sub.Subscribe(messaging.PlayerSubject(s.id), func(data []byte) {
		var e town.MovementEvent
		if err := json.Unmarshal(data, &e); err != nil {
			slog.Warn("decoding movement event", "player", s.id, "error", err)
			return
		}
		select {
		case s.notices <- display.RenderMovement(&e):
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("subscribing to movement: %w", err)
	}
	defer stopMoves()
	defer s.leaveMirror()

	// Read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	if err := s.writeLine(fmt.Sprintf("You are standing in the town square, %s. Try 'help'.", s.name)); err != nil {
		return err
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-s.done:
			if err := s.writeLine("\nDisconnected for inactivity."); err != nil {
				slog.Warn("writing disconnect message", "player", s.id, "error", err)
			}
			return nil

		case msg := <-s.notices:
			if err := s.writeLine("\n" + msg); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case m := <-s.models:
			if s.mirror != nil && m.ID == s.areaID {
				s.mirror.UpdateFrom(m)
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Connection lost.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			s.touch()

			line = strings.TrimSpace(line)
			if line == "" {
				if err := s.prompt(); err != nil {
					return err
				}
				continue
			}

			err := s.handleLine(ctx, line)
			if errors.Is(err, errQuit) {
				s.writeLine("Goodbye!")
				return nil
			}
			if err != nil {
				// Rejections are part of the conversation, not session
				// failures.
				if werr := s.writeLine(err.Error()); werr != nil {
					return werr
				}
			}

			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

func (s *session) handleLine(ctx context.Context, line string) error {
	act, err := parseLine(line)
	if err != nil {
		return err
	}

	switch act.kind {
	case actGo:
		return s.enterArea(act.area)

	case actLeave:
		if s.areaID == "" {
			return fmt.Errorf("you are not in an area")
		}
		if err := s.town.LeaveArea(s.id); err != nil {
			return err
		}
		s.leaveMirror()
		return s.writeLine("You step back into the town square.")

	case actWhere:
		if s.areaID == "" {
			return s.writeLine("You are in the town square.")
		}
		return s.writeLine(fmt.Sprintf("You are in %s.", s.areaID))

	case actHelp:
		if err := s.writeLine(helpText); err != nil {
			return err
		}
		return s.writeLine(fmt.Sprintf("Areas: %s", strings.Join(s.town.AreaIDs(), ", ")))

	case actQuit:
		return errQuit

	default:
		return s.dispatchCommand(ctx, act.cmd)
	}
}

// enterArea moves the player and rewires the mirror. The area subscription is
// set up before the move so the entry snapshot is not missed.
func (s *session) enterArea(areaID string) error {
	area := s.town.Area(areaID)
	if area == nil {
		return fmt.Errorf("there is no %q here", areaID)
	}
	if areaID == s.areaID {
		return fmt.Errorf("you are already in %s", areaID)
	}

	s.leaveMirror()

	switch area.Kind() {
	case town.AreaKindGrocery:
		s.grocery = controller.NewGroceryController(areaID, s.id, s.sender)
		s.mirror = s.grocery
	case town.AreaKindTrading:
		s.trading = controller.NewTradingController(areaID, s.id, s.sender)
		s.mirror = s.trading
	case town.AreaKindInventory:
		s.inventory = controller.NewInventoryController(areaID, s.id, s.sender)
		s.mirror = s.inventory
	}
	s.mirror.Subscribe(s.onEvent)

	stop, err := s.sub.Subscribe(messaging.AreaSubject(areaID), func(data []byte) {
		var m town.AreaModel
		if err := json.Unmarshal(data, &m); err != nil {
			slog.Warn("decoding area model", "area", areaID, "error", err)
			return
		}
		select {
		case s.models <- &m:
		default:
		}
	})
	if err != nil {
		s.leaveMirror()
		return fmt.Errorf("subscribing to area: %w", err)
	}
	s.mirrorStop = stop
	s.areaID = areaID

	if err := s.town.EnterArea(s.id, areaID); err != nil {
		s.leaveMirror()
		return err
	}
	return nil
}

func (s *session) leaveMirror() {
	if s.mirrorStop != nil {
		s.mirrorStop()
	}
	s.areaID = ""
	s.mirror = nil
	s.mirrorStop = nil
	s.grocery = nil
	s.trading = nil
	s.inventory = nil
	s.lastShown = nil
}

// onEvent renders each fresh snapshot once, no matter how many field events it
// produced.
func (s *session) onEvent(e controller.Event) {
	if e.Model == s.lastShown {
		return
	}
	s.lastShown = e.Model

	text, err := display.RenderArea(e.Model)
	if err != nil {
		slog.Warn("rendering area model", "area", e.Model.ID, "error", err)
		return
	}
	if err := s.writeLine("\n" + text); err != nil {
		slog.Warn("writing area model", "player", s.id, "error", err)
	}
}

func (s *session) dispatchCommand(ctx context.Context, cmd town.Command) error {
	switch c := cmd.(type) {
	case *town.OpenStore:
		if s.grocery == nil {
			return fmt.Errorf("there is no store here")
		}
		return s.grocery.OpenStore(ctx)
	case *town.AddToCart:
		if s.grocery == nil {
			return fmt.Errorf("there is no store here")
		}
		return s.grocery.AddToCart(ctx, c.Item, c.Quantity)
	case *town.RemoveFromCart:
		if s.grocery == nil {
			return fmt.Errorf("there is no store here")
		}
		return s.grocery.RemoveFromCart(ctx, c.Item, c.Quantity)
	case *town.Checkout:
		if s.grocery == nil {
			return fmt.Errorf("there is no store here")
		}
		return s.grocery.Checkout(ctx)

	case *town.OpenBoard:
		if s.trading == nil {
			return fmt.Errorf("there is no trading board here")
		}
		return s.trading.OpenBoard(ctx)
	case *town.PostOffer:
		if s.trading == nil {
			return fmt.Errorf("there is no trading board here")
		}
		return s.trading.PostOffer(ctx, c.Offered, c.Wanted)
	case *town.AcceptOffer:
		if s.trading == nil {
			return fmt.Errorf("there is no trading board here")
		}
		return s.trading.AcceptOffer(ctx, c.OfferID)
	case *town.DeleteOffer:
		if s.trading == nil {
			return fmt.Errorf("there is no trading board here")
		}
		return s.trading.DeleteOffer(ctx)

	case *town.OpenInventory:
		if s.inventory == nil {
			return fmt.Errorf("you need a quiet corner to check your bags")
		}
		return s.inventory.OpenInventory(ctx)

	default:
		return fmt.Errorf("unknown command")
	}
}

func (s *session) prompt() error {
	prompt := "> "
	if s.areaID != "" {
		prompt = fmt.Sprintf("[%s] > ", s.areaID)
	}
	_, err := s.conn.Write([]byte(prompt))
	return err
}

func (s *session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(msg + "\n"))
	return err
}
