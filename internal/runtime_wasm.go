//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRecorder *Recorder

func GetRecorder() *Recorder {
	once.Do(func() {
		globalRecorder = NewRecorder()
	})

	return globalRecorder
}

func activeRecorder() (*Recorder, bool) {
	r := GetRecorder()
	return r, r.Recording()
}

func releaseRecorder() {}
