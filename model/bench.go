package model

import "time"

// BenchmarkSample is one timed read at a position on the device.
type BenchmarkSample struct {
	PositionPct float64 // 0..100, position on the device
	ReadMBps    float64 // sequential read speed for one block
	AccessMs    float64 // seek latency in milliseconds
}

// BenchmarkResult aggregates one benchmark run. Transient: held for
// display and export only.
type BenchmarkResult struct {
	Device    string
	Started   time.Time
	Elapsed   time.Duration
	BlockSize int
	Samples   []BenchmarkSample

	AvgReadMBps float64
	MinReadMBps float64
	MaxReadMBps float64
	AvgAccessMs float64
	MinAccessMs float64
	MaxAccessMs float64
}
