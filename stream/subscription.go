package stream

import "sync"

// Subscription is the handle returned by Subscribe.
// Unsubscribing runs its teardown functions once, in the order they were added.
type Subscription struct {
	mu       sync.Mutex
	closed   bool
	teardown []func()
}

// NewSubscription creates an open subscription with optional teardown functions.
func NewSubscription(teardown ...func()) *Subscription {
	return &Subscription{teardown: teardown}
}

// Add registers a teardown function.
// If the subscription is already closed, fn runs immediately.
func (s *Subscription) Add(fn func()) {
	if s == nil || fn == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		fn()
		return
	}
	s.teardown = append(s.teardown, fn)
	s.mu.Unlock()
}

// Unsubscribe closes the subscription. Calling it more than once has no effect.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	teardown := s.teardown
	s.teardown = nil
	s.mu.Unlock()

	for _, fn := range teardown {
		fn()
	}
}

// Closed reports whether Unsubscribe was called.
func (s *Subscription) Closed() bool {
	if s == nil {
		return true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
