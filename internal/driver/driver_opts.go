package driver

import "time"

type TownDriverOpt func(*TownDriver)

func WithTickLength(tickLength time.Duration) TownDriverOpt {
	return func(d *TownDriver) {
		d.tickLength = tickLength
	}
}
