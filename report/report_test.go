package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dhealth/diskscope/model"
)

func nvmeReport() *model.SmartReport {
	return &model.SmartReport{
		Device:    "/dev/nvme0n1",
		Type:      model.DiskTypeNVMe,
		Overall:   model.OverallPassed,
		Collected: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		ModelName: "Samsung SSD 980 PRO 1TB",
		Attributes: []model.SmartAttribute{
			{ID: -1, Name: "critical_warning", Value: "0", Raw: "0", Health: model.HealthOK},
			{ID: -1, Name: "percentage_used", Value: "85", Raw: "85", Health: model.HealthWarn},
		},
	}
}

func ataReport() *model.SmartReport {
	return &model.SmartReport{
		Device:  "/dev/sda",
		Type:    model.DiskTypeATA,
		Overall: model.OverallPassed,
		Attributes: []model.SmartAttribute{
			{ID: 5, Name: "Reallocated_Sector_Ct", Value: "200", Worst: "200", Thresh: "140", Raw: "0", Health: model.HealthOK},
		},
	}
}

func TestWriteCSVNVMe(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nvmeReport()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"Device,Health,Type",
		"/dev/nvme0n1,PASSED,nvme",
		"",
		"Name,Value,Raw,Health",
		"critical_warning,0,0,ok",
		"percentage_used,85,85,warn",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWriteCSVATA(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, ataReport()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "ID,Name,Value,Worst,Thresh,Raw,Health") {
		t.Errorf("missing ATA header:\n%s", out)
	}
	if !strings.Contains(out, "5,Reallocated_Sector_Ct,200,200,140,0,ok") {
		t.Errorf("missing attribute row:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	rep := nvmeReport()
	if err := WriteJSON(&buf, rep); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var back model.SmartReport
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if back.Device != rep.Device || back.Overall != rep.Overall {
		t.Errorf("Device/Overall = %q/%q", back.Device, back.Overall)
	}
	if len(back.Attributes) != 2 {
		t.Errorf("len(Attributes) = %d", len(back.Attributes))
	}
}

func TestWriteBenchmarkCSV(t *testing.T) {
	res := &model.BenchmarkResult{
		Device:      "/dev/sda",
		Started:     time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		BlockSize:   4194304,
		AvgReadMBps: 180.5,
		MinReadMBps: 120,
		MaxReadMBps: 210,
		AvgAccessMs: 6.25,
		Samples: []model.BenchmarkSample{
			{PositionPct: 0, ReadMBps: 210, AccessMs: 4},
			{PositionPct: 50, ReadMBps: 120, AccessMs: 8.5},
		},
	}

	var buf bytes.Buffer
	if err := WriteBenchmarkCSV(&buf, res); err != nil {
		t.Fatalf("WriteBenchmarkCSV: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "/dev/sda,2026-08-30 12:00:00,4194304,180.500,120.000,210.000,6.250") {
		t.Errorf("missing summary row:\n%s", out)
	}
	if !strings.Contains(out, "50.000,120.000,8.500") {
		t.Errorf("missing sample row:\n%s", out)
	}
}

func TestDefaultFilenames(t *testing.T) {
	tests := []struct {
		device string
		json   string
		csv    string
		bench  string
	}{
		{"/dev/nvme0n1", "smart_report_dev_nvme0n1.json", "smart_report_dev_nvme0n1.csv", "benchmark_dev_nvme0n1.csv"},
		{"/dev/sda", "smart_report_dev_sda.json", "smart_report_dev_sda.csv", "benchmark_dev_sda.csv"},
	}
	for _, tt := range tests {
		if got := DefaultJSONFilename(tt.device); got != tt.json {
			t.Errorf("DefaultJSONFilename(%q) = %q", tt.device, got)
		}
		if got := DefaultCSVFilename(tt.device); got != tt.csv {
			t.Errorf("DefaultCSVFilename(%q) = %q", tt.device, got)
		}
		if got := DefaultBenchFilename(tt.device); got != tt.bench {
			t.Errorf("DefaultBenchFilename(%q) = %q", tt.device, got)
		}
	}
}
