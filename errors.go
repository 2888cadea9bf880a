package cell

import "github.com/AnatoleLucet/cell/internal"

var (
	// ErrNoSources is returned by WatchAll when given no sources.
	ErrNoSources = internal.ErrNoSources

	// ErrNestedRecording is the panic value raised when a computed is created
	// while another one is discovering its dependencies.
	ErrNestedRecording = internal.ErrNestedRecording
)
