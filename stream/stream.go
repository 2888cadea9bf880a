// Package stream is a small synchronous push-stream toolkit: subjects,
// subscriptions and the handful of operators the cell engine is built on.
//
// Everything here runs on the caller's goroutine. Emitting a value calls every
// subscriber, in subscription order, before returning.
package stream

// Observer receives the notifications of a Stream. Any field may be nil.
type Observer[T any] struct {
	Next     func(T)
	Error    func(error)
	Complete func()
}

func (o Observer[T]) next(v T) {
	if o.Next != nil {
		o.Next(v)
	}
}

func (o Observer[T]) error(err error) {
	if o.Error != nil {
		o.Error(err)
	}
}

func (o Observer[T]) complete() {
	if o.Complete != nil {
		o.Complete()
	}
}

// Stream is anything that can be subscribed to.
type Stream[T any] interface {
	Subscribe(o Observer[T]) *Subscription
}

// Func adapts a subscribe function into a Stream.
type Func[T any] func(o Observer[T]) *Subscription

// Subscribe calls f.
func (f Func[T]) Subscribe(o Observer[T]) *Subscription {
	return f(o)
}

// Subscribe is a shorthand for subscribing with a next callback only.
func Subscribe[T any](s Stream[T], next func(T)) *Subscription {
	return s.Subscribe(Observer[T]{Next: next})
}

// Hide returns a view of s that only exposes Subscribe,
// so callers cannot type-assert their way back to a Subject.
func Hide[T any](s Stream[T]) Stream[T] {
	return Func[T](s.Subscribe)
}
