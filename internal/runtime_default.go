//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var recorders sync.Map

// GetRecorder returns the current goroutine's recorder, creating it if needed.
func GetRecorder() *Recorder {
	gid := getGID()

	if r, ok := recorders.Load(gid); ok {
		return r.(*Recorder)
	}

	r := NewRecorder()
	recorders.Store(gid, r)
	return r
}

func activeRecorder() (*Recorder, bool) {
	r, ok := recorders.Load(getGID())
	if !ok {
		return nil, false
	}

	rec := r.(*Recorder)
	return rec, rec.Recording()
}

// releaseRecorder drops the goroutine's recorder once its session ended,
// so finished goroutines don't leave entries behind.
func releaseRecorder() {
	recorders.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
