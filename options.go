package cell

import (
	"github.com/AnatoleLucet/cell/internal"
)

// Scope bounds the lifetime of the subscriptions a cell or watch creates.
// *scope.Scope implements it.
type Scope = internal.Scope

// Instrument observes writes, invalidations, recomputes and watch firings.
// See package telemetry.
type Instrument = internal.Instrument

type Option = internal.Option

// WithScope binds internal subscriptions to s instead of the ambient scope.
func WithScope(s Scope) Option {
	return func(c *internal.Config) {
		c.Scope = s
	}
}

// WithInstrument overrides the default instrument.
func WithInstrument(i Instrument) Option {
	return func(c *internal.Config) {
		c.Instrument = i
	}
}

// SetDefaultInstrument sets the instrument used when WithInstrument is not given.
// nil disables instrumentation.
func SetDefaultInstrument(i Instrument) {
	internal.SetDefaultInstrument(i)
}
