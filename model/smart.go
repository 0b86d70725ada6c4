package model

import "time"

// DiskType identifies the SMART attribute encoding family.
type DiskType string

const (
	DiskTypeNVMe    DiskType = "nvme"
	DiskTypeATA     DiskType = "sata_ata"
	DiskTypeUnknown DiskType = "unknown"
)

// Health is the per-attribute classification flag.
type Health string

const (
	HealthOK   Health = "ok"
	HealthWarn Health = "warn"
)

// Overall health verdicts as reported by the diagnostic tool.
const (
	OverallPassed  = "PASSED"
	OverallFailed  = "FAILED"
	OverallUnknown = "UNKNOWN"
)

// SmartAttribute is one parsed SMART attribute. Values are kept as the
// tool reported them; non-numeric text is preserved verbatim and simply
// carries no numeric interpretation. Immutable once parsed.
type SmartAttribute struct {
	ID     int // ATA attribute id, -1 for NVMe entries
	Name   string
	Value  string // normalized value (ATA) or health-log value (NVMe)
	Worst  string // ATA only
	Thresh string // ATA only
	Raw    string
	Health Health
}

// SmartReport is the result of one collection run against one device.
// The attribute slice is never mutated after synthesis; a rescan
// replaces the whole report.
type SmartReport struct {
	Device     string
	Type       DiskType
	Overall    string // PASSED, FAILED or UNKNOWN
	Collected  time.Time
	ModelName  string
	Serial     string
	Firmware   string
	Capacity   uint64 // bytes, 0 when not reported
	Temp       int    // Celsius, 0 when not reported
	PowerOnHrs int
	Attributes []SmartAttribute
	Raw        string // raw smartctl stdout, kept for display and export
}

// WarnCount returns the number of attributes classified as warn.
func (r *SmartReport) WarnCount() int {
	n := 0
	for _, a := range r.Attributes {
		if a.Health == HealthWarn {
			n++
		}
	}
	return n
}
