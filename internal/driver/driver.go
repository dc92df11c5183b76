package driver

import (
	"context"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Manager is a piece of background upkeep driven on the shared tick, like the
// idle sweep or the ledger mirror flush.
type Manager interface {
	Tick(context.Context) error
}

type TownDriver struct {
	tickLength time.Duration
	managers   []Manager
}

func NewTownDriver(managers []Manager, opts ...TownDriverOpt) *TownDriver {
	d := &TownDriver{
		tickLength: DefaultTickLength,
		managers:   managers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *TownDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *TownDriver) Tick(ctx context.Context) error {
	for _, m := range d.managers {
		if err := m.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
