package internal

import (
	"github.com/oklog/ulid/v2"

	"github.com/AnatoleLucet/cell/stream"
)

// Node is the untyped view of a cell shared by plain and derived cells.
type Node interface {
	ID() ulid.ULID

	// ReadAny returns the current value and records the read.
	ReadAny() any

	// Changes fires once per change of the node.
	Changes() stream.Stream[struct{}]
}

func changesOf(nodes []Node) []stream.Stream[struct{}] {
	changes := make([]stream.Stream[struct{}], len(nodes))
	for i, n := range nodes {
		changes[i] = n.Changes()
	}

	return changes
}
