// Package smart maps raw smartctl output into uniform attribute reports
// and classifies each attribute against a static threshold table.
package smart

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dhealth/diskscope/model"
	"github.com/dhealth/diskscope/util"
)

// nvmeKeyOrder is the display order for NVMe health-log fields, matching
// the order smartctl prints them in text mode. Keys not listed here are
// appended alphabetically.
var nvmeKeyOrder = []string{
	"critical_warning",
	"temperature",
	"available_spare",
	"available_spare_threshold",
	"percentage_used",
	"data_units_read",
	"data_units_written",
	"host_reads",
	"host_writes",
	"controller_busy_time",
	"power_cycles",
	"power_on_hours",
	"unsafe_shutdowns",
	"media_errors",
	"num_err_log_entries",
	"warning_temp_time",
	"critical_comp_time",
}

// DetectDiskType infers the attribute encoding family from the device
// path first, then from the payload shape.
func DetectDiskType(device string, top map[string]json.RawMessage) model.DiskType {
	if strings.Contains(strings.ToLower(device), "nvme") {
		return model.DiskTypeNVMe
	}
	if top != nil {
		if _, ok := top["nvme_smart_health_information_log"]; ok {
			return model.DiskTypeNVMe
		}
		if _, ok := top["ata_smart_attributes"]; ok {
			return model.DiskTypeATA
		}
	}
	return model.DiskTypeUnknown
}

// Synthesize builds a complete report from raw smartctl stdout. It never
// fails: malformed sections are skipped and an unparseable payload
// yields a report with no attributes and health derived from the raw
// text. The returned attribute slice is complete and never mutated
// afterwards.
func Synthesize(device string, raw []byte, collected time.Time, rules RuleSet) model.SmartReport {
	report := model.SmartReport{
		Device:    device,
		Type:      model.DiskTypeUnknown,
		Overall:   model.OverallUnknown,
		Collected: collected,
		Raw:       string(raw),
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		top = nil
	}

	report.Type = DetectDiskType(device, top)

	if top == nil {
		report.Overall = healthFromText(report.Raw)
		return report
	}

	report.Overall = overallHealth(top, report.Raw)
	fillIdentity(top, &report)

	switch report.Type {
	case model.DiskTypeNVMe:
		report.Attributes = parseNVMeLog(top["nvme_smart_health_information_log"])
	case model.DiskTypeATA:
		report.Attributes = parseATATable(top["ata_smart_attributes"])
	}

	dedupe(&report)
	for i := range report.Attributes {
		report.Attributes[i].Health = rules.Classify(report.Type, report.Attributes[i])
	}
	return report
}

// overallHealth reads smart_status.passed, falling back to scanning the
// raw text when the structured field is absent.
func overallHealth(top map[string]json.RawMessage, raw string) string {
	var status struct {
		Passed *bool `json:"passed"`
	}
	if msg, ok := top["smart_status"]; ok {
		if err := json.Unmarshal(msg, &status); err == nil && status.Passed != nil {
			if *status.Passed {
				return model.OverallPassed
			}
			return model.OverallFailed
		}
	}
	return healthFromText(raw)
}

func healthFromText(raw string) string {
	upper := strings.ToUpper(raw)
	if strings.Contains(upper, "PASSED") || strings.Contains(upper, "OK") {
		return model.OverallPassed
	}
	if strings.Contains(upper, "FAILED") {
		return model.OverallFailed
	}
	return model.OverallUnknown
}

// fillIdentity copies device identity fields when present. Each section
// is decoded independently so one malformed field cannot poison the
// rest.
func fillIdentity(top map[string]json.RawMessage, report *model.SmartReport) {
	decodeSection(top, "model_name", &report.ModelName)
	decodeSection(top, "serial_number", &report.Serial)
	decodeSection(top, "firmware_version", &report.Firmware)

	var capacity struct {
		Bytes uint64 `json:"bytes"`
	}
	if decodeSection(top, "user_capacity", &capacity) {
		report.Capacity = capacity.Bytes
	}
	var temp struct {
		Current int `json:"current"`
	}
	if decodeSection(top, "temperature", &temp) {
		report.Temp = temp.Current
	}
	var pot struct {
		Hours int `json:"hours"`
	}
	if decodeSection(top, "power_on_time", &pot) {
		report.PowerOnHrs = pot.Hours
	}
}

func decodeSection(top map[string]json.RawMessage, key string, dst any) bool {
	msg, ok := top[key]
	if !ok {
		return false
	}
	return json.Unmarshal(msg, dst) == nil
}

// parseATATable maps the ata_smart_attributes.table rows. Rows that fail
// to decode are skipped; field values that are not numeric are preserved
// as text.
func parseATATable(msg json.RawMessage) []model.SmartAttribute {
	if msg == nil {
		return nil
	}
	var section struct {
		Table []json.RawMessage `json:"table"`
	}
	if err := json.Unmarshal(msg, &section); err != nil {
		return nil
	}

	attrs := make([]model.SmartAttribute, 0, len(section.Table))
	for _, rowMsg := range section.Table {
		var row map[string]json.RawMessage
		if err := json.Unmarshal(rowMsg, &row); err != nil {
			continue
		}
		attr := model.SmartAttribute{
			ID:     int(util.IntOr(stringify(row["id"]), -1)),
			Name:   stringify(row["name"]),
			Value:  stringify(row["value"]),
			Worst:  stringify(row["worst"]),
			Thresh: stringify(row["thresh"]),
			Raw:    rawField(row["raw"]),
		}
		if attr.Name == "" {
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

// rawField prefers the human string of an ATA raw value, falling back to
// the numeric form.
func rawField(msg json.RawMessage) string {
	if msg == nil {
		return ""
	}
	var raw struct {
		Value  *int64 `json:"value"`
		String string `json:"string"`
	}
	if err := json.Unmarshal(msg, &raw); err == nil {
		if raw.String != "" {
			return raw.String
		}
		if raw.Value != nil {
			return strconv.FormatInt(*raw.Value, 10)
		}
	}
	return stringify(msg)
}

// parseNVMeLog flattens the NVMe health log into attributes. Field order
// follows nvmeKeyOrder for stable display.
func parseNVMeLog(msg json.RawMessage) []model.SmartAttribute {
	if msg == nil {
		return nil
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(msg, &entries); err != nil {
		return nil
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ordered := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range nvmeKeyOrder {
		if _, ok := entries[k]; ok {
			ordered = append(ordered, k)
			seen[k] = true
		}
	}
	for _, k := range keys {
		if !seen[k] {
			ordered = append(ordered, k)
		}
	}

	attrs := make([]model.SmartAttribute, 0, len(ordered))
	for _, k := range ordered {
		val := stringify(entries[k])
		attrs = append(attrs, model.SmartAttribute{
			ID:    -1,
			Name:  k,
			Value: val,
			Raw:   val,
		})
	}
	return attrs
}

// stringify renders a scalar JSON value as display text. Integral
// numbers render without an exponent; anything non-scalar falls back to
// its compact JSON form.
func stringify(msg json.RawMessage) string {
	if msg == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(msg, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(msg, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return string(msg)
}

// dedupe enforces name uniqueness within a report: first occurrence
// wins.
func dedupe(report *model.SmartReport) {
	seen := make(map[string]bool, len(report.Attributes))
	kept := report.Attributes[:0]
	for _, a := range report.Attributes {
		if seen[a.Name] {
			continue
		}
		seen[a.Name] = true
		kept = append(kept, a)
	}
	report.Attributes = kept
}
