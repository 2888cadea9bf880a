package internal

import (
	"slices"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/cell/stream"
)

// Computed is a derived cell. Its dependencies are captured during the first
// evaluation and never change. It recomputes lazily, on the first read after
// one of its dependencies changed.
type Computed struct {
	id ulid.ULID

	mu    sync.Mutex
	value any
	dirty bool

	compute func() any
	set     func(any)

	deps    []Node
	changes *stream.Subject[struct{}]

	// combined subscription to the deps' changes
	sub *stream.Subscription

	inst Instrument
}

// NewComputed evaluates compute once to discover its dependencies.
// set is optional and only invoked through Write.
func NewComputed(compute func() any, set func(any), cfg *Config) *Computed {
	c := &Computed{
		id:      ulid.Make(),
		compute: compute,
		set:     set,
		changes: stream.NewSubject[struct{}](),
		inst:    cfg.Instrument,
	}

	start := time.Now()
	c.value, c.deps = Capture(compute)
	c.inst.Recomputed(c.id, time.Since(start))

	glog.V(3).Infof("computed %s created with %d dependencies", c.id, len(c.deps))

	// no deps: the combined signal completes right away and the value stays frozen
	c.sub = SubscribeScoped(cfg.Scope, stream.CombineLatest(changesOf(c.deps)...), stream.Observer[[]struct{}]{
		Next: func([]struct{}) { c.invalidate() },
	})

	return c
}

func (c *Computed) ID() ulid.ULID {
	return c.id
}

// Read records the read and returns the value, recomputing it first if stale.
func (c *Computed) Read() any {
	Track(c)
	return c.Value()
}

func (c *Computed) ReadAny() any {
	return c.Read()
}

// Value returns the up to date value without recording the read.
func (c *Computed) Value() any {
	c.mu.Lock()
	dirty := c.dirty
	c.dirty = false
	c.mu.Unlock()

	if dirty {
		c.recompute()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Write forwards v to the setter. No-op without one.
func (c *Computed) Write(v any) {
	if c.set != nil {
		c.set(v)
	}
}

func (c *Computed) Changes() stream.Stream[struct{}] {
	return stream.Hide[struct{}](c.changes)
}

// Deps returns the dependencies captured at construction.
func (c *Computed) Deps() []Node {
	return slices.Clone(c.deps)
}

func (c *Computed) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Tracking reports whether the computed still listens to its dependencies.
func (c *Computed) Tracking() bool {
	return !c.sub.Closed()
}

func (c *Computed) invalidate() {
	c.mu.Lock()
	c.dirty = true
	c.mu.Unlock()

	c.inst.Invalidated(c.id)
	glog.V(2).Infof("computed %s invalidated", c.id)

	c.changes.Next(struct{}{})
}

func (c *Computed) recompute() {
	start := time.Now()

	ok := false
	defer func() {
		// a panicking getter leaves the cell stale
		if !ok {
			c.mu.Lock()
			c.dirty = true
			c.mu.Unlock()
		}
	}()

	v := c.compute()
	ok = true

	c.mu.Lock()
	c.value = v
	c.mu.Unlock()

	c.inst.Recomputed(c.id, time.Since(start))
}
