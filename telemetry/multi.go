package telemetry

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/cell"
)

type multi []cell.Instrument

// Multi fans every event out to each instrument, in order.
func Multi(instruments ...cell.Instrument) cell.Instrument {
	return multi(instruments)
}

func (m multi) Written(id ulid.ULID) {
	for _, i := range m {
		i.Written(id)
	}
}

func (m multi) Invalidated(id ulid.ULID) {
	for _, i := range m {
		i.Invalidated(id)
	}
}

func (m multi) Recomputed(id ulid.ULID, took time.Duration) {
	for _, i := range m {
		i.Recomputed(id, took)
	}
}

func (m multi) WatchTriggered(id ulid.ULID, sources int) func() {
	done := make([]func(), len(m))
	for n, i := range m {
		done[n] = i.WatchTriggered(id, sources)
	}

	return func() {
		for n := len(done) - 1; n >= 0; n-- {
			done[n]()
		}
	}
}
