package internal

import (
	"sync"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/cell/stream"
)

// Signal is a plain cell.
type Signal struct {
	id ulid.ULID

	mu    sync.RWMutex
	value any

	changes *stream.Subject[struct{}]

	inst Instrument
}

func NewSignal(initial any, cfg *Config) *Signal {
	return &Signal{
		id:      ulid.Make(),
		value:   initial,
		changes: stream.NewSubject[struct{}](),
		inst:    cfg.Instrument,
	}
}

func (s *Signal) ID() ulid.ULID {
	return s.id
}

// Read records the read and returns the value.
func (s *Signal) Read() any {
	Track(s)
	return s.Value()
}

func (s *Signal) ReadAny() any {
	return s.Read()
}

// Value returns the value without recording the read.
func (s *Signal) Value() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Write stores v and notifies every subscriber, even if v equals the current value.
func (s *Signal) Write(v any) {
	s.mu.Lock()
	s.value = v
	s.mu.Unlock()

	s.inst.Written(s.id)
	if glog.V(2) {
		glog.Infof("cell %s written, notifying %d", s.id, s.changes.Observers())
	}

	s.changes.Next(struct{}{})
}

func (s *Signal) Changes() stream.Stream[struct{}] {
	return stream.Hide[struct{}](s.changes)
}
