// Package bench performs timed read benchmarks against a block device
// or plain file: evenly spaced seek-and-read samples across the whole
// span, producing per-sample speed and access latency.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhealth/diskscope/model"
)

// Defaults match a sequential-read benchmark coarse enough to finish in
// seconds on spinning disks.
const (
	DefaultBlockSize = 4 * 1024 * 1024
	DefaultSamples   = 100
)

// Config controls one benchmark run.
type Config struct {
	BlockSize int // bytes read per sample
	Samples   int // number of positions sampled across the device
}

func (c Config) withDefaults() Config {
	if c.BlockSize <= 0 {
		c.BlockSize = DefaultBlockSize
	}
	if c.Samples <= 0 {
		c.Samples = DefaultSamples
	}
	return c
}

// Progress is invoked after every sample, on the benchmark goroutine.
type Progress func(s model.BenchmarkSample, done, total int)

// Run executes a read benchmark. The device is opened read-only; nothing
// is ever written. Cancelling the context stops the run and returns the
// samples gathered so far together with ctx.Err().
func Run(ctx context.Context, device string, cfg Config, progress Progress) (model.BenchmarkResult, error) {
	cfg = cfg.withDefaults()
	started := time.Now()

	f, err := os.Open(device)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return model.BenchmarkResult{}, fmt.Errorf("open %s: permission denied (run as root): %w", device, err)
		}
		return model.BenchmarkResult{}, fmt.Errorf("open %s: %w", device, err)
	}
	defer f.Close()

	size, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return model.BenchmarkResult{}, fmt.Errorf("size %s: %w", device, err)
	}
	if size <= 0 {
		return model.BenchmarkResult{}, fmt.Errorf("%s: zero-length device", device)
	}

	buf := make([]byte, cfg.BlockSize)
	samples := make([]model.BenchmarkSample, 0, cfg.Samples)

	for i := 0; i < cfg.Samples; i++ {
		if ctx.Err() != nil {
			log.Debug().Str("device", device).Int("samples", len(samples)).Msg("benchmark cancelled")
			return finish(device, started, cfg.BlockSize, samples), ctx.Err()
		}

		pos := int64(i) * size / int64(cfg.Samples)

		seekStart := time.Now()
		if _, err := f.Seek(pos, io.SeekStart); err != nil {
			return finish(device, started, cfg.BlockSize, samples), fmt.Errorf("seek %s: %w", device, err)
		}
		accessMs := time.Since(seekStart).Seconds() * 1000

		readStart := time.Now()
		n, readErr := io.ReadFull(f, buf)
		elapsed := time.Since(readStart).Seconds()
		if readErr != nil && !errors.Is(readErr, io.ErrUnexpectedEOF) && !errors.Is(readErr, io.EOF) {
			return finish(device, started, cfg.BlockSize, samples), fmt.Errorf("read %s: %w", device, readErr)
		}

		s := model.BenchmarkSample{
			PositionPct: positionPct(pos, size),
			ReadMBps:    readSpeed(n, elapsed),
			AccessMs:    accessMs,
		}
		samples = append(samples, s)
		if progress != nil {
			progress(s, i+1, cfg.Samples)
		}
	}

	return finish(device, started, cfg.BlockSize, samples), nil
}

// readSpeed converts one block read into MB/s. A zero or negative
// elapsed time (clock granularity on cached reads) yields 0.
func readSpeed(n int, elapsed float64) float64 {
	if elapsed <= 0 || n <= 0 {
		return 0
	}
	return float64(n) / (1024 * 1024) / elapsed
}

func positionPct(pos, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(pos) / float64(total) * 100
}

func finish(device string, started time.Time, blockSize int, samples []model.BenchmarkSample) model.BenchmarkResult {
	res := computeStats(samples)
	res.Device = device
	res.Started = started
	res.Elapsed = time.Since(started)
	res.BlockSize = blockSize
	return res
}
