package stream

import "slices"

// TakeUntil mirrors src until notifier emits, then completes and unsubscribes from both.
// Errors from the notifier are forwarded. A notifier completing without emitting is ignored.
func TakeUntil[T, U any](src Stream[T], notifier Stream[U]) Stream[T] {
	return Func[T](func(o Observer[T]) *Subscription {
		sub := NewSubscription()

		stop := notifier.Subscribe(Observer[U]{
			Next: func(U) {
				if sub.Closed() {
					return
				}
				o.complete()
				sub.Unsubscribe()
			},
			Error: func(err error) {
				if sub.Closed() {
					return
				}
				o.error(err)
				sub.Unsubscribe()
			},
		})
		sub.Add(stop.Unsubscribe)

		// the notifier may have fired while subscribing
		if sub.Closed() {
			return sub
		}

		inner := src.Subscribe(Observer[T]{
			Next: func(v T) {
				if !sub.Closed() {
					o.next(v)
				}
			},
			Error: func(err error) {
				if sub.Closed() {
					return
				}
				o.error(err)
				sub.Unsubscribe()
			},
			Complete: func() {
				if sub.Closed() {
					return
				}
				o.complete()
				sub.Unsubscribe()
			},
		})
		sub.Add(inner.Unsubscribe)

		return sub
	})
}

// CombineLatest emits the latest value of every source once each of them has
// emitted at least once, then again on every emission of any source.
//
// With no sources it completes immediately without emitting. It also completes
// when every source completed, or when one completes before ever emitting.
func CombineLatest[T any](srcs ...Stream[T]) Stream[[]T] {
	return Func[[]T](func(o Observer[[]T]) *Subscription {
		sub := NewSubscription()

		if len(srcs) == 0 {
			o.complete()
			sub.Unsubscribe()
			return sub
		}

		values := make([]T, len(srcs))
		seen := make([]bool, len(srcs))
		waiting := len(srcs)
		active := len(srcs)

		for i, src := range srcs {
			if sub.Closed() {
				break
			}

			inner := src.Subscribe(Observer[T]{
				Next: func(v T) {
					if sub.Closed() {
						return
					}

					values[i] = v
					if !seen[i] {
						seen[i] = true
						waiting--
					}

					if waiting == 0 {
						o.next(slices.Clone(values))
					}
				},
				Error: func(err error) {
					if sub.Closed() {
						return
					}
					o.error(err)
					sub.Unsubscribe()
				},
				Complete: func() {
					if sub.Closed() {
						return
					}

					active--
					if active == 0 || !seen[i] {
						o.complete()
						sub.Unsubscribe()
					}
				},
			})
			sub.Add(inner.Unsubscribe)
		}

		return sub
	})
}
