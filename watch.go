package cell

import (
	"slices"

	"github.com/AnatoleLucet/cell/internal"
	"github.com/AnatoleLucet/cell/scope"
	"github.com/AnatoleLucet/cell/stream"
)

// Getter turns a getter into a node, wrapping it in a computed.
func Getter[T any](get func() T, opts ...Option) Cell[T] {
	return NewComputed(get, opts...)
}

// Watch calls fn with the new value of src on every change.
// It does not fire on subscription.
func Watch[T any](src Cell[T], fn func(T), opts ...Option) Stop {
	stop, _ := WatchAll([]Node{src}, func(values []any) {
		fn(as[T](values[0]))
	}, opts...)

	return stop
}

// WatchFunc watches the cells read by get.
// Stop also releases the computed wrapping get.
func WatchFunc[T any](get func() T, fn func(T), opts ...Option) Stop {
	cfg := internal.NewConfig(opts...)

	// the getter lives in its own scope, ended by Stop or by the watch's scope
	owner := scope.New()
	parent := stream.Subscribe(cfg.Scope.Teardown(), func(struct{}) { owner.Dispose() })

	src := Getter(get, append(slices.Clip(opts), WithScope(owner))...)
	unwatch := Watch(src, fn, opts...)

	return func() {
		unwatch()
		parent.Unsubscribe()
		owner.Dispose()
	}
}

// Watch2 calls fn once both sources changed since the watch began, then on every change of either.
func Watch2[A, B any](a Cell[A], b Cell[B], fn func(A, B), opts ...Option) Stop {
	stop, _ := WatchAll([]Node{a, b}, func(values []any) {
		fn(as[A](values[0]), as[B](values[1]))
	}, opts...)

	return stop
}

// Watch3 is Watch2 over three sources.
func Watch3[A, B, C any](a Cell[A], b Cell[B], c Cell[C], fn func(A, B, C), opts ...Option) Stop {
	stop, _ := WatchAll([]Node{a, b, c}, func(values []any) {
		fn(as[A](values[0]), as[B](values[1]), as[C](values[2]))
	}, opts...)

	return stop
}

// WatchAll calls fn with the current value of every source, in order, once each
// of them changed since the watch began and then on every change of any of them.
//
// It returns ErrNoSources, without subscribing to anything, when sources is empty.
func WatchAll(sources []Node, fn func(values []any), opts ...Option) (Stop, error) {
	stop, err := internal.Watch(sources, fn, internal.NewConfig(opts...))
	if err != nil {
		return nil, err
	}

	return stop, nil
}
