//go:build !js
// +build !js

package metrics

import (
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/shirou/gopsutil/process"
)

// ProcessMemory retrieves the resident set size of the process in bytes.
func ProcessMemory() uint64 {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		log.Warn("Failed to open process for memory stats", "err", err)
		return 0
	}
	info, err := proc.MemoryInfo()
	if err != nil {
		log.Warn("Failed to retrieve memory usage", "err", err)
		return 0
	}
	return info.RSS
}
