// Package engine orchestrates device enumeration, SMART collection,
// benchmarking and explicit persistence for one UI session.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhealth/diskscope/bench"
	"github.com/dhealth/diskscope/collector"
	"github.com/dhealth/diskscope/config"
	"github.com/dhealth/diskscope/history"
	"github.com/dhealth/diskscope/model"
	"github.com/dhealth/diskscope/smart"
)

var errHistoryDisabled = errors.New("history store unavailable")

// Engine holds the session state: the current device list and the last
// report per device. Collection runs on caller goroutines (the UI
// dispatches one worker per action); Engine only guards its own state.
type Engine struct {
	cfg   config.Config
	store *history.Store // nil when the history store could not open

	mu      sync.Mutex
	devices []model.DeviceInfo
	reports map[string]*model.SmartReport
}

// New creates an engine. store may be nil; history features are then
// disabled and everything else keeps working.
func New(cfg config.Config, store *history.Store) *Engine {
	return &Engine{
		cfg:     cfg,
		store:   store,
		reports: make(map[string]*model.SmartReport),
	}
}

// Config returns the session configuration.
func (e *Engine) Config() config.Config { return e.cfg }

// Store returns the history store, nil when disabled.
func (e *Engine) Store() *history.Store { return e.store }

// RefreshDevices re-enumerates block devices and enriches them with
// filesystem usage. The cached list is replaced, never mutated.
func (e *Engine) RefreshDevices(ctx context.Context) ([]model.DeviceInfo, error) {
	devs, err := collector.ListBlockDevices(ctx, e.cfg.ToolTimeout())
	if err != nil {
		return nil, err
	}
	devs = collector.EnrichDevices(devs)

	e.mu.Lock()
	e.devices = devs
	e.mu.Unlock()
	return devs, nil
}

// Devices returns the cached device list from the last refresh.
func (e *Engine) Devices() []model.DeviceInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.devices
}

// CheckDevice collects and parses SMART data for one device. On tool
// failure the typed error is returned for the caller to surface; the
// previous report for the device is left in place.
func (e *Engine) CheckDevice(ctx context.Context, device string) (*model.SmartReport, error) {
	raw, err := collector.CollectSMART(ctx, device, e.cfg.ToolTimeout())
	if err != nil {
		log.Warn().Err(err).Str("device", device).Msg("SMART collection failed")
		return nil, err
	}

	rep := smart.Synthesize(device, raw, time.Now(), e.cfg.Rules)

	e.mu.Lock()
	e.reports[device] = &rep
	e.mu.Unlock()

	log.Info().
		Str("device", device).
		Str("type", string(rep.Type)).
		Str("overall", rep.Overall).
		Int("attributes", len(rep.Attributes)).
		Int("warnings", rep.WarnCount()).
		Msg("SMART report synthesized")
	return &rep, nil
}

// Report returns the last report for a device, nil when none exists.
func (e *Engine) Report(device string) *model.SmartReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reports[device]
}

// EmptyReport is the fallback shown when collection fails: one device,
// no attributes, health unknown.
func (e *Engine) EmptyReport(device string) *model.SmartReport {
	return &model.SmartReport{
		Device:    device,
		Type:      model.DiskTypeUnknown,
		Overall:   model.OverallUnknown,
		Collected: time.Now(),
	}
}

// Benchmark runs a timed read benchmark against a device.
func (e *Engine) Benchmark(ctx context.Context, device string, progress bench.Progress) (model.BenchmarkResult, error) {
	cfg := bench.Config{
		BlockSize: e.cfg.Benchmark.BlockSize,
		Samples:   e.cfg.Benchmark.Samples,
	}
	return bench.Run(ctx, device, cfg, progress)
}

// SaveReport persists a report to the history store.
func (e *Engine) SaveReport(r *model.SmartReport) (int64, error) {
	if e.store == nil {
		return 0, errHistoryDisabled
	}
	return e.store.SaveReport(r)
}

// SaveBenchmark persists a benchmark result to the history store.
func (e *Engine) SaveBenchmark(r *model.BenchmarkResult) (int64, error) {
	if e.store == nil {
		return 0, errHistoryDisabled
	}
	return e.store.SaveBenchmark(r)
}
