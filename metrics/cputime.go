// Package metrics samples process resource usage around a discrete log search.
package metrics

import "time"

// Sample is a snapshot of wall clock, CPU time and resident memory.
type Sample struct {
	Wall   time.Time
	CPU    time.Duration
	Memory uint64
}

// Now takes a sample.
func Now() Sample {
	return Sample{Wall: time.Now(), CPU: ProcessCPUTime(), Memory: ProcessMemory()}
}

// Usage is the difference between two samples. Memory is the resident size
// at the end; MemoryGrowth is how much it changed, mostly the baby-step table.
type Usage struct {
	Elapsed      time.Duration
	CPU          time.Duration
	Memory       uint64
	MemoryGrowth int64
}

// Since reports the resources consumed since s was taken.
func (s Sample) Since() Usage {
	now := Now()
	return Usage{
		Elapsed:      now.Wall.Sub(s.Wall),
		CPU:          now.CPU - s.CPU,
		Memory:       now.Memory,
		MemoryGrowth: int64(now.Memory) - int64(s.Memory),
	}
}
