package command

import (
	"fmt"

	"github.com/pixil98/go-town/internal/driver"
	"github.com/pixil98/go-town/internal/listener"
	"github.com/pixil98/go-town/internal/messaging"
	"github.com/pixil98/go-town/internal/player"
	"github.com/pixil98/go-town/internal/town"
	"github.com/pixil98/go-service"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	// Messaging backbone
	natsServer, err := cfg.Nats.buildNatsServer()
	if err != nil {
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	// Durable stores
	areaStore, err := cfg.Storage.BuildAreaStore()
	if err != nil {
		return nil, fmt.Errorf("creating area store: %w", err)
	}
	charStore, err := cfg.Storage.BuildCharacterStore()
	if err != nil {
		return nil, fmt.Errorf("creating character store: %w", err)
	}
	ledgerStore, err := cfg.Storage.BuildLedgerStore()
	if err != nil {
		return nil, fmt.Errorf("creating ledger store: %w", err)
	}

	// The authoritative town state
	ledger := town.NewPlayerLedger(cfg.Town.StartingBalance)
	mirror := town.NewLedgerMirror(ledger, ledgerStore)
	if err := mirror.Restore(); err != nil {
		return nil, fmt.Errorf("restoring ledger: %w", err)
	}

	broadcaster := messaging.NewTownBroadcaster(natsServer)
	t, err := town.NewTown(ledger, broadcaster, areaStore)
	if err != nil {
		return nil, fmt.Errorf("creating town: %w", err)
	}
	responder := messaging.NewCommandResponder(natsServer, t)

	// Player sessions
	sender := messaging.NewNatsSender(natsServer)
	pm := player.NewPlayerManager(t, sender, natsServer, charStore, cfg.Town.idleTimeout())
	cm := listener.NewConnectionManager(pm)

	// Create Listeners
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		listener, err := l.BuildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = listener
	}

	// Setup the town driver
	driver := driver.NewTownDriver([]driver.Manager{
		pm,
		mirror,
	}, driver.WithTickLength(cfg.tickLength()))

	// Create a worker list
	return service.WorkerList{
		"nats":      natsServer,
		"responder": responder,
		"players":   pm,
		"driver":    driver,
		"listeners": &listeners,
	}, nil
}
