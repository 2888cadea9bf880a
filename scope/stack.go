package scope

import "sync"

// active scopes, per goroutine
var stacks sync.Map

// Run makes s the current scope while fn runs.
func (s *Scope) Run(fn func()) {
	push(s)
	defer pop()

	fn()
}

// With runs fn with s as the current scope and returns its result.
func With[T any](s *Scope, fn func() T) T {
	push(s)
	defer pop()

	return fn()
}

// Current returns the innermost active scope, or Default when none is active.
func Current() *Scope {
	if s, ok := Active(); ok {
		return s
	}
	return Default()
}

// Active returns the innermost active scope on this goroutine.
func Active() (*Scope, bool) {
	v, ok := stacks.Load(getGID())
	if !ok {
		return nil, false
	}

	stack := v.([]*Scope)
	return stack[len(stack)-1], true
}

// OnDispose registers fn on the active scope.
func OnDispose(fn func()) (cancel func(), err error) {
	s, ok := Active()
	if !ok {
		return nil, ErrNoScope
	}
	return s.OnDispose(fn), nil
}

func push(s *Scope) {
	gid := getGID()

	var stack []*Scope
	if v, ok := stacks.Load(gid); ok {
		stack = v.([]*Scope)
	}
	stacks.Store(gid, append(stack, s))
}

func pop() {
	gid := getGID()

	v, ok := stacks.Load(gid)
	if !ok {
		return
	}

	stack := v.([]*Scope)
	if len(stack) <= 1 {
		stacks.Delete(gid)
		return
	}
	stacks.Store(gid, stack[:len(stack)-1])
}
