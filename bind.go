package cell

import (
	"github.com/AnatoleLucet/cell/internal"
	"github.com/AnatoleLucet/cell/stream"
)

// Bind creates a cell seeded from *ptr. Every write to the cell is stored back
// into *ptr before any other dependent is notified.
func Bind[T any](ptr *T, opts ...Option) *Value[T] {
	cfg := internal.NewConfig(opts...)
	v := NewValue(*ptr, opts...)

	internal.SubscribeScoped(cfg.Scope, v.Changes(), stream.Observer[struct{}]{
		Next: func(struct{}) { *ptr = v.Peek() },
	})

	return v
}
