package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-town/internal/player"
)

type TownConfig struct {
	StartingBalance int    `json:"starting_balance"`
	IdleTimeout     string `json:"idle_timeout"`
}

func (c *TownConfig) validate() error {
	el := errors.NewErrorList()

	if c.StartingBalance < 0 {
		el.Add(fmt.Errorf("starting_balance must not be negative"))
	}

	if c.IdleTimeout != "" {
		_, err := time.ParseDuration(c.IdleTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing idle_timeout: %w", err))
		}
	}

	return el.Err()
}

func (c *TownConfig) idleTimeout() time.Duration {
	if c.IdleTimeout == "" {
		return player.DefaultIdleTimeout
	}
	d, err := time.ParseDuration(c.IdleTimeout)
	if err != nil {
		return player.DefaultIdleTimeout
	}
	return d
}
