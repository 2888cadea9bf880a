package cell

import (
	"sync"

	"github.com/golang/glog"

	"github.com/AnatoleLucet/cell/internal"
	"github.com/AnatoleLucet/cell/stream"
)

// SubscribeScoped subscribes o to src until s tears down.
// A nil scope means the ambient one, see scope.Current.
func SubscribeScoped[T any](s Scope, src stream.Stream[T], o stream.Observer[T]) *stream.Subscription {
	return internal.SubscribeScoped(s, src, o)
}

// AsStream exposes c as a stream. Subscribers get the latest value right away,
// then one emission per change of c.
//
// The stream completes when the returned Stop is called or the scope is disposed.
func AsStream[T any](c Cell[T], opts ...Option) (stream.Stream[T], Stop) {
	cfg := internal.NewConfig(opts...)
	subject := stream.NewBehaviorSubject(c.Read())

	unwatch, _ := internal.Watch([]Node{c}, func(values []any) {
		subject.Next(as[T](values[0]))
	}, cfg)

	var (
		once     sync.Once
		teardown *stream.Subscription
	)
	stop := func() {
		once.Do(func() {
			unwatch()
			teardown.Unsubscribe()
			subject.Complete()
		})
	}

	// fires synchronously if the scope is already disposed
	teardown = stream.Subscribe(cfg.Scope.Teardown(), func(struct{}) { stop() })

	return stream.Hide[T](subject), stop
}

// FromStream creates a cell holding the latest value emitted by src, initial until then.
// Errors are logged and leave the last value in place.
func FromStream[T any](src stream.Stream[T], initial T, opts ...Option) *Computed[T] {
	cfg := internal.NewConfig(opts...)
	v := NewValue(initial, opts...)

	internal.SubscribeScoped(cfg.Scope, src, stream.Observer[T]{
		Next: v.Write,
		Error: func(err error) {
			glog.Warningf("cell %s: source stream failed: %v", v.ID(), err)
		},
	})

	return NewComputed(v.Read, opts...)
}
