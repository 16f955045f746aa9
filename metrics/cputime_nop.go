//go:build windows || js
// +build windows js

package metrics

import "time"

// ProcessCPUTime returns 0 on platforms without getrusage.
func ProcessCPUTime() time.Duration {
	return 0
}
