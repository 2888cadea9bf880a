package internal

import (
	"errors"

	"github.com/golang/glog"
)

// ErrNestedRecording is raised when a recording session starts while another one is active
// on the same goroutine, e.g. constructing a computed inside another computed's getter.
var ErrNestedRecording = errors.New("cell: dependency recording already in progress")

// Recorder captures the nodes read during a synchronous evaluation.
type Recorder struct {
	recording bool

	// first-read order, duplicates dropped
	deps []Node
	seen map[Node]struct{}
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

// Start clears the recorder and begins a session.
func (r *Recorder) Start() {
	if r.recording {
		panic(ErrNestedRecording)
	}

	r.recording = true
	r.deps = nil
	r.seen = make(map[Node]struct{})
}

// Record appends n to the active session. No-op without a session.
func (r *Recorder) Record(n Node) {
	if !r.recording {
		return
	}

	if _, ok := r.seen[n]; ok {
		return
	}

	r.seen[n] = struct{}{}
	r.deps = append(r.deps, n)
}

// Stop ends the session and returns the captured nodes.
func (r *Recorder) Stop() []Node {
	deps := r.deps

	r.recording = false
	r.deps = nil
	r.seen = nil

	return deps
}

func (r *Recorder) Recording() bool {
	return r.recording
}

// Track records n in the current goroutine's session, if any.
func Track(n Node) {
	if r, ok := activeRecorder(); ok {
		r.Record(n)
	}
}

// Capture evaluates fn inside a recording session and returns its result along
// with every node read during the call. The session ends even if fn panics.
func Capture(fn func() any) (value any, deps []Node) {
	r := GetRecorder()
	r.Start()

	defer func() {
		deps = r.Stop()
		releaseRecorder()

		glog.V(3).Infof("recorded %d dependencies", len(deps))
	}()

	return fn(), nil
}
