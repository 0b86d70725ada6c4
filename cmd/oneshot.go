package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dhealth/diskscope/bench"
	"github.com/dhealth/diskscope/collector"
	"github.com/dhealth/diskscope/config"
	"github.com/dhealth/diskscope/history"
	"github.com/dhealth/diskscope/model"
	"github.com/dhealth/diskscope/report"
	"github.com/dhealth/diskscope/smart"
	"github.com/dhealth/diskscope/util"
)

// output returns the destination writer for one-shot results.
func output(opts options) (io.Writer, func(), error) {
	if opts.outPath == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(opts.outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// runList prints the enumerated block devices.
func runList(cfg config.Config, opts options) error {
	devs, err := collector.ListBlockDevices(context.Background(), cfg.ToolTimeout())
	if err != nil {
		return describeToolError(err)
	}
	devs = collector.EnrichDevices(devs)

	w, done, err := output(opts)
	if err != nil {
		return err
	}
	defer done()

	if opts.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(devs)
	}

	if len(devs) == 0 {
		fmt.Fprintln(w, "no block devices found")
		return nil
	}
	fmt.Fprintf(w, "%-14s %-26s %10s  %-6s %s\n", "DEVICE", "MODEL", "SIZE", "TRAN", "SERIAL")
	for _, d := range devs {
		fmt.Fprintf(w, "%-14s %-26s %10s  %-6s %s\n",
			d.Path, d.Model, util.FormatBytes(d.SizeBytes), d.Transport, d.Serial)
	}
	return nil
}

// runCheck collects, parses and prints one SMART report.
func runCheck(cfg config.Config, opts options) error {
	device := opts.checkDevice

	raw, err := collector.CollectSMART(context.Background(), device, cfg.ToolTimeout())
	if err != nil {
		return describeToolError(err)
	}
	rep := smart.Synthesize(device, raw, time.Now(), cfg.Rules)

	w, done, err := output(opts)
	if err != nil {
		return err
	}
	defer done()

	switch {
	case opts.jsonOut:
		return report.WriteJSON(w, &rep)
	case opts.csvOut:
		return report.WriteCSV(w, &rep)
	default:
		printReport(w, &rep)
		return nil
	}
}

func printReport(w io.Writer, r *model.SmartReport) {
	fmt.Fprintf(w, "Device:  %s\n", r.Device)
	fmt.Fprintf(w, "Type:    %s\n", r.Type)
	fmt.Fprintf(w, "Health:  %s\n", r.Overall)
	if r.ModelName != "" {
		fmt.Fprintf(w, "Model:   %s\n", r.ModelName)
	}
	if r.Serial != "" {
		fmt.Fprintf(w, "Serial:  %s\n", r.Serial)
	}
	if r.Capacity > 0 {
		fmt.Fprintf(w, "Size:    %s\n", util.FormatBytes(r.Capacity))
	}
	fmt.Fprintln(w)

	if len(r.Attributes) == 0 {
		fmt.Fprintln(w, "no attributes parsed")
		return
	}

	if r.Type == model.DiskTypeNVMe {
		fmt.Fprintf(w, "%-30s %-22s %s\n", "NAME", "VALUE", "HEALTH")
		for _, a := range r.Attributes {
			fmt.Fprintf(w, "%-30s %-22s %s\n", a.Name, a.Value, a.Health)
		}
		return
	}
	fmt.Fprintf(w, "%4s %-26s %6s %6s %7s %-20s %s\n", "ID", "NAME", "VALUE", "WORST", "THRESH", "RAW", "HEALTH")
	for _, a := range r.Attributes {
		fmt.Fprintf(w, "%4d %-26s %6s %6s %7s %-20s %s\n", a.ID, a.Name, a.Value, a.Worst, a.Thresh, a.Raw, a.Health)
	}
}

// runBench runs a one-shot read benchmark with progress on stderr.
func runBench(cfg config.Config, opts options) error {
	device := opts.benchDevice
	bcfg := bench.Config{BlockSize: cfg.Benchmark.BlockSize, Samples: cfg.Benchmark.Samples}

	res, err := bench.Run(context.Background(), device, bcfg, func(s model.BenchmarkSample, done, total int) {
		fmt.Fprintf(os.Stderr, "\r%3d/%d  %s", done, total, util.FormatSpeed(s.ReadMBps))
	})
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return err
	}

	w, done, err := output(opts)
	if err != nil {
		return err
	}
	defer done()

	if opts.csvOut {
		return report.WriteBenchmarkCSV(w, &res)
	}
	fmt.Fprintf(w, "Device:      %s\n", res.Device)
	fmt.Fprintf(w, "Block size:  %s\n", util.FormatBytes(uint64(res.BlockSize)))
	fmt.Fprintf(w, "Samples:     %d in %.1fs\n", len(res.Samples), res.Elapsed.Seconds())
	fmt.Fprintf(w, "Read speed:  avg %s  min %s  max %s\n",
		util.FormatSpeed(res.AvgReadMBps), util.FormatSpeed(res.MinReadMBps), util.FormatSpeed(res.MaxReadMBps))
	fmt.Fprintf(w, "Access time: avg %.3fms  min %.3fms  max %.3fms\n",
		res.AvgAccessMs, res.MinAccessMs, res.MaxAccessMs)
	return nil
}

// runHistory lists stored reports and benchmarks.
func runHistory(cfg config.Config) error {
	store, err := history.Open(cfg.HistoryPath)
	if err != nil {
		return err
	}
	defer store.Close()

	reports, err := store.ListReports(50)
	if err != nil {
		return err
	}
	benches, err := store.ListBenchmarks(50)
	if err != nil {
		return err
	}

	if len(reports) == 0 && len(benches) == 0 {
		fmt.Println("history is empty")
		return nil
	}

	if len(reports) > 0 {
		fmt.Println("Stored reports:")
		fmt.Printf("%5s %-14s %-9s %-8s %5s %6s %s\n", "ID", "DEVICE", "TYPE", "HEALTH", "WARN", "ATTRS", "COLLECTED")
		for _, r := range reports {
			fmt.Printf("%5d %-14s %-9s %-8s %5d %6d %s\n",
				r.ID, r.Device, r.Type, r.Overall, r.WarnCount, r.AttrCount,
				r.Collected.Format("2006-01-02 15:04:05"))
		}
	}
	if len(benches) > 0 {
		fmt.Println("\nStored benchmarks:")
		fmt.Printf("%5s %-14s %-17s %12s %10s %8s\n", "ID", "DEVICE", "STARTED", "AVG READ", "ACCESS", "SAMPLES")
		for _, b := range benches {
			fmt.Printf("%5d %-14s %-17s %12s %8.3fms %8d\n",
				b.ID, b.Device, b.Started.Format("2006-01-02 15:04"),
				util.FormatSpeed(b.AvgReadMBps), b.AvgAccessMs, b.SampleCount)
		}
	}
	return nil
}

// describeToolError adds installation hints to typed collector errors.
func describeToolError(err error) error {
	if errors.Is(err, collector.ErrToolNotFound) {
		return fmt.Errorf("%w\ninstall smartmontools / util-linux, e.g.:\n  apt install smartmontools\n  dnf install smartmontools", err)
	}
	return err
}
