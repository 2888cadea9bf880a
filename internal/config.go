package internal

import (
	"github.com/AnatoleLucet/cell/scope"
	"github.com/AnatoleLucet/cell/stream"
)

// Scope is anything exposing a one-shot teardown signal.
type Scope interface {
	Teardown() stream.Stream[struct{}]
}

type Config struct {
	// bounds every subscription created by the node
	Scope Scope

	Instrument Instrument
}

type Option func(*Config)

// NewConfig applies opts. A missing scope resolves to the ambient one.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Scope == nil {
		cfg.Scope = scope.Current()
	}
	if cfg.Instrument == nil {
		cfg.Instrument = DefaultInstrument()
	}

	return cfg
}

// SubscribeScoped subscribes o to src until s tears down.
// A nil scope resolves to the ambient one. The default scope never tears
// down, so subscriptions bound to it are not wrapped at all.
func SubscribeScoped[T any](s Scope, src stream.Stream[T], o stream.Observer[T]) *stream.Subscription {
	if s == nil {
		s = scope.Current()
	}
	if s == Scope(scope.Default()) {
		return src.Subscribe(o)
	}

	return stream.TakeUntil(src, s.Teardown()).Subscribe(o)
}
