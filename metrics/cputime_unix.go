//go:build !windows && !js
// +build !windows,!js

package metrics

import (
	"time"

	"github.com/ethereum/go-ethereum/log"
	syscall "golang.org/x/sys/unix"
)

// ProcessCPUTime retrieves the user plus system CPU time consumed by the
// process since startup.
func ProcessCPUTime() time.Duration {
	var usage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &usage); err != nil {
		log.Warn("Failed to retrieve CPU time", "err", err)
		return 0
	}
	return time.Duration(usage.Utime.Nano() + usage.Stime.Nano())
}
