// Package cell is a fine-grained reactive state engine.
//
// Reads of a cell are tracked automatically, so derived cells and watches know
// which cells they depend on. Writes notify synchronously and derived cells
// recompute lazily, on the next read after a dependency changed.
package cell

import (
	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/cell/internal"
	"github.com/AnatoleLucet/cell/stream"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Node is the untyped view of a cell.
type Node = internal.Node

// Cell is a readable, trackable value.
type Cell[T any] interface {
	Node
	Read() T
}

// Stop ends a subscription. Calling it more than once has no effect.
type Stop func()

type Value[T any] struct {
	signal *internal.Signal
}

// NewValue creates a plain mutable cell.
func NewValue[T any](initial T, opts ...Option) *Value[T] {
	return &Value[T]{
		internal.NewSignal(initial, internal.NewConfig(opts...)),
	}
}

// Read the current value, tracking the dependency if a recording is in progress.
func (v *Value[T]) Read() T {
	return as[T](v.signal.Read())
}

// Peek reads the current value without tracking it.
func (v *Value[T]) Peek() T {
	return as[T](v.signal.Value())
}

// Write a new value and notify every dependent, even if the value did not change.
func (v *Value[T]) Write(value T) {
	v.signal.Write(value)
}

// Update writes fn applied to the current value.
func (v *Value[T]) Update(fn func(T) T) {
	v.Write(fn(v.Peek()))
}

func (v *Value[T]) ID() ulid.ULID                    { return v.signal.ID() }
func (v *Value[T]) ReadAny() any                     { return v.signal.Read() }
func (v *Value[T]) Changes() stream.Stream[struct{}] { return v.signal.Changes() }

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a derived cell. compute runs once right away to discover
// the cells it reads, then again on the first read after any of them changed.
// Cells read only by later runs are never tracked.
func NewComputed[T any](compute func() T, opts ...Option) *Computed[T] {
	return newComputed(compute, nil, opts)
}

// NewWritableComputed is NewComputed with a setter, invoked by Write.
func NewWritableComputed[T any](compute func() T, set func(T), opts ...Option) *Computed[T] {
	return newComputed(compute, func(v any) { set(as[T](v)) }, opts)
}

func newComputed[T any](compute func() T, set func(any), opts []Option) *Computed[T] {
	return &Computed[T]{
		internal.NewComputed(
			func() any { return compute() },
			set,
			internal.NewConfig(opts...),
		),
	}
}

// Read the current value, recomputing it first if stale.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Read())
}

// Peek reads the up to date value without tracking it.
func (c *Computed[T]) Peek() T {
	return as[T](c.computed.Value())
}

// Write calls the setter given to NewWritableComputed. No-op otherwise.
func (c *Computed[T]) Write(value T) {
	c.computed.Write(value)
}

// Dirty reports whether the next read recomputes.
func (c *Computed[T]) Dirty() bool { return c.computed.Dirty() }

// Deps returns the cells captured during the first evaluation.
func (c *Computed[T]) Deps() []Node { return c.computed.Deps() }

func (c *Computed[T]) ID() ulid.ULID                    { return c.computed.ID() }
func (c *Computed[T]) ReadAny() any                     { return c.computed.Read() }
func (c *Computed[T]) Changes() stream.Stream[struct{}] { return c.computed.Changes() }
