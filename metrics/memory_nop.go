//go:build js
// +build js

package metrics

// ProcessMemory returns 0 on platforms without process statistics.
func ProcessMemory() uint64 {
	return 0
}
