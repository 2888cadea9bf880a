package internal

import (
	"errors"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/cell/stream"
)

// ErrNoSources is returned when watching an empty list of sources.
var ErrNoSources = errors.New("cell: watch needs at least one source")

// Watch calls fn with the current value of every source each time the combined
// change signal of sources fires. It never fires on subscription.
func Watch(sources []Node, fn func([]any), cfg *Config) (stop func(), err error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	id := ulid.Make()
	sources = append([]Node(nil), sources...)

	sub := SubscribeScoped(cfg.Scope, stream.CombineLatest(changesOf(sources)...), stream.Observer[[]struct{}]{
		Next: func([]struct{}) {
			done := cfg.Instrument.WatchTriggered(id, len(sources))
			defer done()

			glog.V(2).Infof("watch %s triggered", id)

			values := make([]any, len(sources))
			for i, src := range sources {
				values[i] = src.ReadAny()
			}

			fn(values)
		},
	})

	return sub.Unsubscribe, nil
}
