package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dhealth/diskscope/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleReport(device string, collected time.Time) *model.SmartReport {
	return &model.SmartReport{
		Device:    device,
		Type:      model.DiskTypeNVMe,
		Overall:   model.OverallPassed,
		Collected: collected,
		ModelName: "Samsung SSD 980 PRO 1TB",
		Attributes: []model.SmartAttribute{
			{ID: -1, Name: "critical_warning", Value: "0", Raw: "0", Health: model.HealthOK},
			{ID: -1, Name: "percentage_used", Value: "85", Raw: "85", Health: model.HealthWarn},
		},
	}
}

func TestSaveAndGetReport(t *testing.T) {
	s := openTestStore(t)

	rep := sampleReport("/dev/nvme0n1", time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC))
	id, err := s.SaveReport(rep)
	if err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d", id)
	}

	back, err := s.GetReport(id)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if back.Device != rep.Device || back.Overall != rep.Overall {
		t.Errorf("Device/Overall = %q/%q", back.Device, back.Overall)
	}
	if len(back.Attributes) != 2 {
		t.Errorf("len(Attributes) = %d", len(back.Attributes))
	}
	if back.Attributes[1].Health != model.HealthWarn {
		t.Errorf("warn flag lost on round trip")
	}
}

func TestGetReportMissing(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetReport(999); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestListReportsOrder(t *testing.T) {
	s := openTestStore(t)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rep := sampleReport("/dev/sda", base.Add(time.Duration(i)*time.Hour))
		if _, err := s.SaveReport(rep); err != nil {
			t.Fatalf("SaveReport %d: %v", i, err)
		}
	}

	list, err := s.ListReports(10)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len(list) = %d, want 3", len(list))
	}
	// newest first
	if !list[0].Collected.After(list[1].Collected) || !list[1].Collected.After(list[2].Collected) {
		t.Errorf("listing not newest first: %v %v %v",
			list[0].Collected, list[1].Collected, list[2].Collected)
	}
	if list[0].WarnCount != 1 || list[0].AttrCount != 2 {
		t.Errorf("summary counts = %d/%d", list[0].WarnCount, list[0].AttrCount)
	}
}

func TestListReportsOrderAcrossZones(t *testing.T) {
	s := openTestStore(t)

	// The later instant carries a behind-UTC offset, so its local
	// wall-clock string would sort before the earlier one.
	earlier := time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour).In(time.FixedZone("behind", -10*60*60))

	if _, err := s.SaveReport(sampleReport("/dev/sda", earlier)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveReport(sampleReport("/dev/sdb", later)); err != nil {
		t.Fatal(err)
	}

	list, err := s.ListReports(10)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].Device != "/dev/sdb" {
		t.Errorf("newest first violated across zones: got %s", list[0].Device)
	}
	if !list[0].Collected.After(list[1].Collected) {
		t.Errorf("collected order: %v then %v", list[0].Collected, list[1].Collected)
	}
}

func TestListReportsLimit(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := s.SaveReport(sampleReport("/dev/sda", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}
	list, err := s.ListReports(2)
	if err != nil {
		t.Fatalf("ListReports: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("len(list) = %d, want 2", len(list))
	}
}

func TestSaveAndListBenchmarks(t *testing.T) {
	s := openTestStore(t)

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
	id, err := s.SaveBenchmark(res)
	if err != nil {
		t.Fatalf("SaveBenchmark: %v", err)
	}
	if id <= 0 {
		t.Fatalf("id = %d", id)
	}

	list, err := s.ListBenchmarks(10)
	if err != nil {
		t.Fatalf("ListBenchmarks: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	b := list[0]
	if b.Device != "/dev/sda" || b.SampleCount != 2 {
		t.Errorf("summary = %+v", b)
	}
	if b.AvgReadMBps != 180.5 || b.AvgAccessMs != 6.25 {
		t.Errorf("averages = %v/%v", b.AvgReadMBps, b.AvgAccessMs)
	}
}

func TestCloseNil(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Errorf("nil Close = %v", err)
	}
}
