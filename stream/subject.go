package stream

import (
	"slices"
	"sync"
)

type subscriber[T any] struct {
	observer     Observer[T]
	subscription *Subscription
}

// Subject is a multicast stream you push values into.
type Subject[T any] struct {
	mu sync.Mutex

	// registration order is dispatch order
	subs []*subscriber[T]

	stopped bool
	err     error
}

// NewSubject creates a subject with no subscribers.
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers o. Subscribing to a stopped subject replays
// the terminal notification and returns a closed subscription.
func (s *Subject[T]) Subscribe(o Observer[T]) *Subscription {
	sub := NewSubscription()

	s.mu.Lock()
	if s.stopped {
		err := s.err
		s.mu.Unlock()

		if err != nil {
			o.error(err)
		} else {
			o.complete()
		}
		sub.Unsubscribe()
		return sub
	}

	entry := &subscriber[T]{observer: o, subscription: sub}
	s.subs = append(s.subs, entry)
	s.mu.Unlock()

	sub.Add(func() { s.remove(entry) })
	return sub
}

// Next emits v to every current subscriber.
func (s *Subject[T]) Next(v T) {
	for _, entry := range s.snapshot(false, nil) {
		// may have been unsubscribed by an earlier subscriber in this dispatch
		if entry.subscription.Closed() {
			continue
		}
		entry.observer.next(v)
	}
}

// Error terminates the subject with err.
func (s *Subject[T]) Error(err error) {
	for _, entry := range s.snapshot(true, err) {
		entry.observer.error(err)
		entry.subscription.Unsubscribe()
	}
}

// Complete terminates the subject.
func (s *Subject[T]) Complete() {
	for _, entry := range s.snapshot(true, nil) {
		entry.observer.complete()
		entry.subscription.Unsubscribe()
	}
}

// Stopped reports whether Error or Complete was called.
func (s *Subject[T]) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// Observers returns the number of live subscribers.
func (s *Subject[T]) Observers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// snapshot copies the subscriber list so callbacks can subscribe/unsubscribe freely.
func (s *Subject[T]) snapshot(stop bool, err error) []*subscriber[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return nil
	}

	subs := slices.Clone(s.subs)
	if stop {
		s.stopped = true
		s.err = err
		s.subs = nil
	}

	return subs
}

func (s *Subject[T]) remove(entry *subscriber[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.subs, entry); i >= 0 {
		s.subs = slices.Delete(s.subs, i, i+1)
	}
}

// BehaviorSubject is a Subject that remembers its latest value
// and emits it to every new subscriber.
type BehaviorSubject[T any] struct {
	*Subject[T]

	mu    sync.Mutex
	value T
}

// NewBehaviorSubject creates a behavior subject seeded with initial.
func NewBehaviorSubject[T any](initial T) *BehaviorSubject[T] {
	return &BehaviorSubject[T]{
		Subject: NewSubject[T](),
		value:   initial,
	}
}

// Value returns the latest value.
func (b *BehaviorSubject[T]) Value() T {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.value
}

// Next stores v then emits it.
func (b *BehaviorSubject[T]) Next(v T) {
	if b.Stopped() {
		return
	}

	b.mu.Lock()
	b.value = v
	b.mu.Unlock()

	b.Subject.Next(v)
}

// Subscribe registers o and immediately emits the latest value to it.
func (b *BehaviorSubject[T]) Subscribe(o Observer[T]) *Subscription {
	sub := b.Subject.Subscribe(o)
	if !sub.Closed() {
		o.next(b.Value())
	}

	return sub
}
