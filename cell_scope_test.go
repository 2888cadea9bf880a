package cell

import (
	"runtime"
	"testing"
	"time"
	"weak"

	"github.com/stretchr/testify/assert"

	"github.com/AnatoleLucet/cell/internal"

	"github.com/AnatoleLucet/cell/scope"
	"github.com/AnatoleLucet/cell/stream"
)

func TestScope(t *testing.T) {
	t.Run("disposing stops scoped watches", func(t *testing.T) {
		log := []int{}

		s := scope.New()
		a := NewValue(0)
		Watch(a, func(v int) { log = append(log, v) }, WithScope(s))

		a.Write(1)
		s.Dispose()
		a.Write(2)

		assert.Equal(t, []int{1}, log)
	})

	t.Run("picks up the ambient scope", func(t *testing.T) {
		log := []int{}

		s := scope.New()
		a := NewValue(0)
		s.Run(func() {
			Watch(a, func(v int) { log = append(log, v) })
		})

		a.Write(1)
		s.Dispose()
		a.Write(2)

		assert.Equal(t, []int{1}, log)
	})

	t.Run("explicit scope wins over the ambient one", func(t *testing.T) {
		log := []int{}

		ambient := scope.New()
		explicit := scope.New()
		a := NewValue(0)
		ambient.Run(func() {
			Watch(a, func(v int) { log = append(log, v) }, WithScope(explicit))
		})

		ambient.Dispose()
		a.Write(1)
		explicit.Dispose()
		a.Write(2)

		assert.Equal(t, []int{1}, log)
	})

	t.Run("disposing freezes scoped computeds", func(t *testing.T) {
		s := scope.New()
		a := NewValue(1)
		double := NewComputed(func() int { return a.Read() * 2 }, WithScope(s))

		s.Dispose()
		a.Write(5)

		assert.False(t, double.Dirty())
		assert.Equal(t, 2, double.Read())
	})

	t.Run("disposing completes scoped streams", func(t *testing.T) {
		log := []string{}

		s := scope.New()
		c := NewValue(1)
		out, _ := AsStream[int](c, WithScope(s))
		out.Subscribe(stream.Observer[int]{
			Next:     func(int) { log = append(log, "next") },
			Complete: func() { log = append(log, "complete") },
		})

		s.Dispose()
		c.Write(2)

		assert.Equal(t, []string{"next", "complete"}, log)
	})

	t.Run("disposing detaches stream-backed cells", func(t *testing.T) {
		s := scope.New()
		src := stream.NewSubject[int]()
		c := FromStream[int](src, 0, WithScope(s))

		src.Next(1)
		s.Dispose()
		src.Next(2)

		assert.Equal(t, 1, c.Read())
		assert.Equal(t, 0, src.Observers())
	})

	t.Run("an already disposed scope never fires", func(t *testing.T) {
		calls := 0

		s := scope.New()
		s.Dispose()

		a := NewValue(0)
		Watch(a, func(int) { calls++ }, WithScope(s))
		a.Write(1)

		assert.Equal(t, 0, calls)
	})

	t.Run("scoped subscription", func(t *testing.T) {
		log := []int{}

		s := scope.New()
		src := stream.NewSubject[int]()
		sub := SubscribeScoped[int](s, src, stream.Observer[int]{
			Next: func(v int) { log = append(log, v) },
		})

		src.Next(1)
		s.Dispose()
		src.Next(2)

		assert.Equal(t, []int{1}, log)
		assert.True(t, sub.Closed())
	})

	t.Run("nil scope means the ambient one", func(t *testing.T) {
		log := []int{}

		src := stream.NewSubject[int]()
		sub := SubscribeScoped[int](nil, src, stream.Observer[int]{
			Next: func(v int) { log = append(log, v) },
		})
		defer sub.Unsubscribe()

		src.Next(1)

		assert.Equal(t, []int{1}, log)
		assert.False(t, sub.Closed())
	})
}

// buildUnscoped creates a small graph under the default scope and only keeps weak references to it.
func buildUnscoped() (weak.Pointer[internal.Computed], weak.Pointer[internal.Signal]) {
	a := NewValue(1)
	double := NewComputed(func() int { return a.Read() * 2 })
	Watch(double, func(int) {})
	FromStream(stream.NewSubject[int](), 0)
	Bind(new(int))

	a.Write(2)

	return weak.Make(double.computed), weak.Make(a.signal)
}

func TestDefaultScope(t *testing.T) {
	t.Run("unreachable graphs are collected", func(t *testing.T) {
		computeds := []weak.Pointer[internal.Computed]{}
		signals := []weak.Pointer[internal.Signal]{}

		for range 50 {
			c, s := buildUnscoped()
			computeds = append(computeds, c)
			signals = append(signals, s)
		}

		assert.Eventually(t, func() bool {
			runtime.GC()

			for i := range computeds {
				if computeds[i].Value() != nil || signals[i].Value() != nil {
					return false
				}
			}
			return true
		}, 2*time.Second, 10*time.Millisecond)
	})

	t.Run("subscriptions are not wrapped", func(t *testing.T) {
		log := []int{}

		src := stream.NewSubject[int]()
		sub := SubscribeScoped[int](scope.Default(), src, stream.Observer[int]{
			Next: func(v int) { log = append(log, v) },
		})

		src.Next(1)
		sub.Unsubscribe()
		src.Next(2)

		assert.Equal(t, []int{1}, log)
		assert.Equal(t, 0, src.Observers())
	})
}

func TestBind(t *testing.T) {
	type counter struct {
		Count int
	}

	t.Run("mirrors writes into the field", func(t *testing.T) {
		c := counter{Count: 3}
		v := Bind(&c.Count)

		assert.Equal(t, 3, v.Read())

		v.Write(4)
		assert.Equal(t, 4, c.Count)

		v.Update(func(n int) int { return n + 1 })
		assert.Equal(t, 5, c.Count)
	})

	t.Run("field is updated before watchers run", func(t *testing.T) {
		seen := []int{}

		c := counter{}
		v := Bind(&c.Count)
		Watch(v, func(int) { seen = append(seen, c.Count) })

		v.Write(7)

		assert.Equal(t, []int{7}, seen)
	})

	t.Run("stops mirroring once the scope is disposed", func(t *testing.T) {
		s := scope.New()
		c := counter{}
		v := Bind(&c.Count, WithScope(s))

		v.Write(1)
		s.Dispose()
		v.Write(2)

		assert.Equal(t, 1, c.Count)
		assert.Equal(t, 2, v.Read())
	})
}
