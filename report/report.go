// Package report serializes SMART reports and benchmark results to JSON
// and CSV files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dhealth/diskscope/model"
)

// WriteJSON writes a full report, including the raw tool output.
func WriteJSON(w io.Writer, r *model.SmartReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// SaveJSON writes a report to path, creating or truncating the file.
func SaveJSON(r *model.SmartReport, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return WriteJSON(f, r)
}

// WriteCSV writes the attribute table. Column layout follows the disk
// type: NVMe health-log entries have no per-attribute thresholds, so
// the ATA columns are dropped.
func WriteCSV(w io.Writer, r *model.SmartReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Device", "Health", "Type"}); err != nil {
		return err
	}
	if err := cw.Write([]string{r.Device, r.Overall, string(r.Type)}); err != nil {
		return err
	}
	if err := cw.Write([]string{}); err != nil {
		return err
	}

	if r.Type == model.DiskTypeNVMe {
		if err := cw.Write([]string{"Name", "Value", "Raw", "Health"}); err != nil {
			return err
		}
		for _, a := range r.Attributes {
			if err := cw.Write([]string{a.Name, a.Value, a.Raw, string(a.Health)}); err != nil {
				return err
			}
		}
	} else {
		if err := cw.Write([]string{"ID", "Name", "Value", "Worst", "Thresh", "Raw", "Health"}); err != nil {
			return err
		}
		for _, a := range r.Attributes {
			row := []string{
				strconv.Itoa(a.ID), a.Name, a.Value, a.Worst, a.Thresh, a.Raw, string(a.Health),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the attribute table to path.
func SaveCSV(r *model.SmartReport, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, r)
}

// WriteBenchmarkCSV writes per-sample benchmark data plus a summary row.
func WriteBenchmarkCSV(w io.Writer, r *model.BenchmarkResult) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Device", "Started", "BlockSize", "AvgReadMBps", "MinReadMBps", "MaxReadMBps", "AvgAccessMs"}); err != nil {
		return err
	}
	summary := []string{
		r.Device,
		r.Started.Format("2006-01-02 15:04:05"),
		strconv.Itoa(r.BlockSize),
		formatFloat(r.AvgReadMBps),
		formatFloat(r.MinReadMBps),
		formatFloat(r.MaxReadMBps),
		formatFloat(r.AvgAccessMs),
	}
	if err := cw.Write(summary); err != nil {
		return err
	}
	if err := cw.Write([]string{}); err != nil {
		return err
	}

	if err := cw.Write([]string{"PositionPct", "ReadMBps", "AccessMs"}); err != nil {
		return err
	}
	for _, s := range r.Samples {
		row := []string{formatFloat(s.PositionPct), formatFloat(s.ReadMBps), formatFloat(s.AccessMs)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveBenchmarkCSV writes benchmark samples to path.
func SaveBenchmarkCSV(r *model.BenchmarkResult, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return WriteBenchmarkCSV(f, r)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// DefaultJSONFilename derives a report filename from a device path.
func DefaultJSONFilename(device string) string {
	return "smart_report_" + safeName(device) + ".json"
}

// DefaultCSVFilename derives a CSV filename from a device path.
func DefaultCSVFilename(device string) string {
	return "smart_report_" + safeName(device) + ".csv"
}

// DefaultBenchFilename derives a benchmark CSV filename from a device
// path.
func DefaultBenchFilename(device string) string {
	return "benchmark_" + safeName(device) + ".csv"
}

func safeName(device string) string {
	device = strings.Trim(device, "/")
	device = strings.ReplaceAll(device, "/", "_")
	return strings.ReplaceAll(device, " ", "_")
}
