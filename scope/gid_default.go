//go:build !wasm

package scope

import "github.com/petermattis/goid"

func getGID() int64 {
	return goid.Get()
}
