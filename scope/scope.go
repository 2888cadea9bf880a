// Package scope provides teardown scopes: one-shot "done" signals bounding the
// lifetime of subscriptions, plus a goroutine-local stack of active scopes.
package scope

import (
	"errors"
	"slices"
	"sync"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/cell/stream"
)

// ErrNoScope is returned by scope-dependent helpers called outside any active scope.
var ErrNoScope = errors.New("scope: no active scope")

// Scope is a lifetime boundary. Disposing it fires its teardown signal exactly once.
type Scope struct {
	mu sync.Mutex

	id       ulid.ULID
	disposed bool

	// fires once on Dispose, replayed to late subscribers
	done *stream.Subject[struct{}]

	// cleanup functions, run in reverse registration order
	cleanups []func()

	parent   *Scope
	children []*Scope
}

var defaultScope = New()

// never emits and keeps no reference to its observers, so nothing bound to
// the default scope is pinned in memory by it
var never = stream.Func[struct{}](func(stream.Observer[struct{}]) *stream.Subscription {
	return stream.NewSubscription()
})

// Default returns the process-wide scope. It is never disposed.
func Default() *Scope {
	return defaultScope
}

// New creates a root scope.
func New() *Scope {
	return &Scope{
		id:   ulid.Make(),
		done: stream.NewSubject[struct{}](),
	}
}

// Child creates a scope that is disposed along with s.
// A child of a disposed scope starts out disposed.
// Children of the default scope are plain root scopes.
func (s *Scope) Child() *Scope {
	child := New()
	if s == defaultScope {
		return child
	}
	child.parent = s

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		child.Dispose()
		return child
	}
	s.children = append(s.children, child)
	s.mu.Unlock()

	return child
}

// ID returns the scope identifier.
func (s *Scope) ID() ulid.ULID {
	return s.id
}

// Teardown returns the scope's one-shot teardown signal.
// Subscribing after disposal emits immediately.
func (s *Scope) Teardown() stream.Stream[struct{}] {
	if s == defaultScope {
		return never
	}

	return stream.Func[struct{}](func(o stream.Observer[struct{}]) *stream.Subscription {
		if s.Disposed() {
			if o.Next != nil {
				o.Next(struct{}{})
			}
			if o.Complete != nil {
				o.Complete()
			}
			sub := stream.NewSubscription()
			sub.Unsubscribe()
			return sub
		}

		return s.done.Subscribe(o)
	})
}

// OnDispose registers fn to run when the scope is disposed.
// The returned function cancels the registration.
// On the default scope fn never runs and is not retained.
func (s *Scope) OnDispose(fn func()) (cancel func()) {
	if s == defaultScope {
		return func() {}
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		fn()
		return func() {}
	}

	s.cleanups = append(s.cleanups, fn)
	idx := len(s.cleanups) - 1
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !s.disposed && idx < len(s.cleanups) {
			s.cleanups[idx] = func() {}
		}
	}
}

// Disposed reports whether Dispose was called.
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Dispose disposes children, fires the teardown signal, then runs cleanups.
// Disposing twice, or disposing the default scope, does nothing.
func (s *Scope) Dispose() {
	if s == defaultScope {
		return
	}

	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	children := s.children
	cleanups := s.cleanups
	s.children = nil
	s.cleanups = nil
	s.mu.Unlock()

	glog.V(2).Infof("scope %s disposed (%d children, %d cleanups)", s.id, len(children), len(cleanups))

	for _, child := range children {
		child.Dispose()
	}

	s.done.Next(struct{}{})
	s.done.Complete()

	for _, fn := range slices.Backward(cleanups) {
		fn()
	}

	if s.parent != nil {
		s.parent.removeChild(s)
	}
}

func (s *Scope) removeChild(child *Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.children, child); i >= 0 {
		s.children = slices.Delete(s.children, i, i+1)
	}
}
