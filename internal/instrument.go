package internal

import (
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// Instrument observes the engine. Implementations must be cheap, they run inside write cascades.
type Instrument interface {
	Written(id ulid.ULID)
	Invalidated(id ulid.ULID)
	Recomputed(id ulid.ULID, took time.Duration)

	// WatchTriggered is called before a watch callback runs. done is called once it returns.
	WatchTriggered(id ulid.ULID, sources int) (done func())
}

type noopInstrument struct{}

func (noopInstrument) Written(ulid.ULID)                   {}
func (noopInstrument) Invalidated(ulid.ULID)               {}
func (noopInstrument) Recomputed(ulid.ULID, time.Duration) {}

func (noopInstrument) WatchTriggered(ulid.ULID, int) (done func()) {
	return func() {}
}

type instrumentHolder struct {
	Instrument
}

var defaultInstrument atomic.Pointer[instrumentHolder]

func init() {
	defaultInstrument.Store(&instrumentHolder{noopInstrument{}})
}

// SetDefaultInstrument replaces the instrument used by nodes built without one.
// nil restores the no-op instrument.
func SetDefaultInstrument(i Instrument) {
	if i == nil {
		i = noopInstrument{}
	}
	defaultInstrument.Store(&instrumentHolder{i})
}

func DefaultInstrument() Instrument {
	return defaultInstrument.Load().Instrument
}
