package stream

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	t.Run("dispatches in subscription order", func(t *testing.T) {
		log := []string{}

		s := NewSubject[int]()
		Subscribe(s, func(v int) { log = append(log, fmt.Sprintf("first %d", v)) })
		Subscribe(s, func(v int) { log = append(log, fmt.Sprintf("second %d", v)) })

		s.Next(1)
		s.Next(2)

		assert.Equal(t, []string{
			"first 1",
			"second 1",
			"first 2",
			"second 2",
		}, log)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		log := []int{}

		s := NewSubject[int]()
		sub := Subscribe(s, func(v int) { log = append(log, v) })

		s.Next(1)
		sub.Unsubscribe()
		sub.Unsubscribe()
		s.Next(2)

		assert.Equal(t, []int{1}, log)
		assert.True(t, sub.Closed())
		assert.Equal(t, 0, s.Observers())
	})

	t.Run("unsubscribe during dispatch skips later subscriber", func(t *testing.T) {
		log := []string{}

		s := NewSubject[int]()
		var second *Subscription
		Subscribe(s, func(int) {
			log = append(log, "first")
			second.Unsubscribe()
		})
		second = Subscribe(s, func(int) { log = append(log, "second") })

		s.Next(1)

		assert.Equal(t, []string{"first"}, log)
	})

	t.Run("complete replays to late subscribers", func(t *testing.T) {
		log := []string{}

		s := NewSubject[int]()
		s.Subscribe(Observer[int]{Complete: func() { log = append(log, "early") }})
		s.Complete()
		s.Next(1)

		sub := s.Subscribe(Observer[int]{
			Next:     func(int) { log = append(log, "next") },
			Complete: func() { log = append(log, "late") },
		})

		assert.Equal(t, []string{"early", "late"}, log)
		assert.True(t, sub.Closed())
		assert.True(t, s.Stopped())
	})

	t.Run("error terminates", func(t *testing.T) {
		var got []error

		s := NewSubject[int]()
		s.Subscribe(Observer[int]{Error: func(err error) { got = append(got, err) }})
		s.Error(errors.New("oops"))
		s.Subscribe(Observer[int]{Error: func(err error) { got = append(got, err) }})

		assert.Len(t, got, 2)
		assert.EqualError(t, got[1], "oops")
	})
}

func TestBehaviorSubject(t *testing.T) {
	t.Run("emits latest value on subscribe", func(t *testing.T) {
		log := []int{}

		b := NewBehaviorSubject(1)
		b.Next(2)
		Subscribe(b, func(v int) { log = append(log, v) })
		b.Next(3)

		assert.Equal(t, []int{2, 3}, log)
		assert.Equal(t, 3, b.Value())
	})

	t.Run("ignores values after completion", func(t *testing.T) {
		b := NewBehaviorSubject("a")
		b.Complete()
		b.Next("b")

		assert.Equal(t, "a", b.Value())
	})
}

func TestTakeUntil(t *testing.T) {
	t.Run("stops when notifier emits", func(t *testing.T) {
		log := []string{}

		src := NewSubject[int]()
		done := NewSubject[struct{}]()

		TakeUntil[int, struct{}](src, done).Subscribe(Observer[int]{
			Next:     func(v int) { log = append(log, fmt.Sprintf("next %d", v)) },
			Complete: func() { log = append(log, "complete") },
		})

		src.Next(1)
		done.Next(struct{}{})
		src.Next(2)
		done.Next(struct{}{})

		assert.Equal(t, []string{"next 1", "complete"}, log)
		assert.Equal(t, 0, src.Observers())
		assert.Equal(t, 0, done.Observers())
	})

	t.Run("notifier firing during subscribe never subscribes the source", func(t *testing.T) {
		src := NewSubject[int]()
		fired := Func[struct{}](func(o Observer[struct{}]) *Subscription {
			o.Next(struct{}{})
			return NewSubscription()
		})

		completed := false
		sub := TakeUntil[int, struct{}](src, fired).Subscribe(Observer[int]{
			Complete: func() { completed = true },
		})

		assert.True(t, completed)
		assert.True(t, sub.Closed())
		assert.Equal(t, 0, src.Observers())
	})

	t.Run("unsubscribe releases both sides", func(t *testing.T) {
		src := NewSubject[int]()
		done := NewSubject[int]()

		sub := Subscribe(TakeUntil[int, int](src, done), func(int) {})
		assert.Equal(t, 1, src.Observers())
		assert.Equal(t, 1, done.Observers())

		sub.Unsubscribe()
		assert.Equal(t, 0, src.Observers())
		assert.Equal(t, 0, done.Observers())
	})
}

func TestCombineLatest(t *testing.T) {
	t.Run("waits for every source then fires on each emission", func(t *testing.T) {
		log := [][]int{}

		a := NewSubject[int]()
		b := NewSubject[int]()
		Subscribe(CombineLatest[int](a, b), func(vs []int) { log = append(log, vs) })

		a.Next(1)
		a.Next(2)
		assert.Empty(t, log)

		b.Next(10)
		a.Next(3)
		b.Next(20)

		assert.Equal(t, [][]int{
			{2, 10},
			{3, 10},
			{3, 20},
		}, log)
	})

	t.Run("the same source twice fires twice", func(t *testing.T) {
		count := 0

		a := NewSubject[int]()
		Subscribe(CombineLatest[int](a, a), func([]int) { count++ })

		a.Next(1)
		assert.Equal(t, 1, count)

		a.Next(2)
		assert.Equal(t, 3, count)
	})

	t.Run("no sources completes without emitting", func(t *testing.T) {
		log := []string{}

		CombineLatest[int]().Subscribe(Observer[[]int]{
			Next:     func([]int) { log = append(log, "next") },
			Complete: func() { log = append(log, "complete") },
		})

		assert.Equal(t, []string{"complete"}, log)
	})

	t.Run("completes when a source completes before emitting", func(t *testing.T) {
		completed := false

		a := NewSubject[int]()
		b := NewSubject[int]()
		CombineLatest[int](a, b).Subscribe(Observer[[]int]{Complete: func() { completed = true }})

		a.Next(1)
		b.Complete()

		assert.True(t, completed)
		assert.Equal(t, 0, a.Observers())
	})

	t.Run("keeps going while some sources are alive", func(t *testing.T) {
		log := [][]int{}
		completed := false

		a := NewSubject[int]()
		b := NewSubject[int]()
		CombineLatest[int](a, b).Subscribe(Observer[[]int]{
			Next:     func(vs []int) { log = append(log, vs) },
			Complete: func() { completed = true },
		})

		a.Next(1)
		b.Next(2)
		a.Complete()
		b.Next(3)
		assert.False(t, completed)

		b.Complete()
		assert.True(t, completed)
		assert.Equal(t, [][]int{{1, 2}, {1, 3}}, log)
	})

	t.Run("forwards errors", func(t *testing.T) {
		var got error

		a := NewSubject[int]()
		b := NewSubject[int]()
		CombineLatest[int](a, b).Subscribe(Observer[[]int]{Error: func(err error) { got = err }})

		b.Error(errors.New("boom"))

		assert.EqualError(t, got, "boom")
		assert.Equal(t, 0, a.Observers())
	})

	t.Run("emitted slices are not shared", func(t *testing.T) {
		log := [][]int{}

		a := NewSubject[int]()
		Subscribe(CombineLatest[int](a), func(vs []int) { log = append(log, vs) })

		a.Next(1)
		a.Next(2)

		assert.Equal(t, [][]int{{1}, {2}}, log)
	})
}

func TestHide(t *testing.T) {
	s := NewSubject[int]()
	hidden := Hide[int](s)

	_, ok := hidden.(*Subject[int])
	assert.False(t, ok)

	got := 0
	Subscribe(hidden, func(v int) { got = v })
	s.Next(7)
	assert.Equal(t, 7, got)
}
