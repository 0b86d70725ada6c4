package smart

import (
	"strings"

	"github.com/dhealth/diskscope/model"
	"github.com/dhealth/diskscope/util"
)

// RuleSet is the per-attribute classification table. Classification is a
// pure lookup: the same attribute values always yield the same flag. The
// table is data, loadable from config, so new rules need no parser
// changes.
type RuleSet struct {
	// NVMeSpareFloor warns when available_spare drops below this
	// percentage.
	NVMeSpareFloor int64 `yaml:"nvme_spare_floor"`

	// NVMeUsedCeiling warns when percentage_used exceeds this value.
	NVMeUsedCeiling int64 `yaml:"nvme_used_ceiling"`

	// ATARawWarnAbove warns when the raw value of the given ATA
	// attribute id is strictly greater than the limit.
	ATARawWarnAbove map[int]int64 `yaml:"ata_raw_warn_above"`
}

// DefaultRules returns the built-in classification table.
func DefaultRules() RuleSet {
	return RuleSet{
		NVMeSpareFloor:  10,
		NVMeUsedCeiling: 80,
		ATARawWarnAbove: map[int]int64{
			5:   0, // Reallocated_Sector_Ct
			196: 0, // Reallocated_Event_Count
			197: 0, // Current_Pending_Sector
			198: 0, // Offline_Uncorrectable
		},
	}
}

// Classify flags one attribute as ok or warn. Attributes whose values
// carry no numeric interpretation are never flagged: a rule only fires
// on a successfully parsed number.
func (r RuleSet) Classify(t model.DiskType, a model.SmartAttribute) model.Health {
	if t == model.DiskTypeNVMe {
		return r.classifyNVMe(a)
	}
	return r.classifyATA(a)
}

func (r RuleSet) classifyNVMe(a model.SmartAttribute) model.Health {
	name := strings.ToLower(a.Name)
	v, numeric := util.OptionalInt(a.Value)

	switch {
	case strings.Contains(name, "critical_warning"):
		if numeric && v != 0 {
			return model.HealthWarn
		}
	case strings.Contains(name, "available_spare_threshold"):
		// informational, never flagged
	case strings.Contains(name, "available_spare"):
		if numeric && v < r.NVMeSpareFloor {
			return model.HealthWarn
		}
	case strings.Contains(name, "percentage_used"):
		if numeric && v > r.NVMeUsedCeiling {
			return model.HealthWarn
		}
	case strings.Contains(name, "media_errors"):
		if numeric && v != 0 {
			return model.HealthWarn
		}
	}
	return model.HealthOK
}

func (r RuleSet) classifyATA(a model.SmartAttribute) model.Health {
	// Vendor threshold breach: normalized value fell below thresh.
	v, okV := util.OptionalInt(a.Value)
	th, okT := util.OptionalInt(a.Thresh)
	if okV && okT && v < th {
		return model.HealthWarn
	}

	if limit, ok := r.ATARawWarnAbove[a.ID]; ok {
		if raw, numeric := leadingInt(a.Raw); numeric && raw > limit {
			return model.HealthWarn
		}
	}
	return model.HealthOK
}

// leadingInt parses the first token of an ATA raw string. Raw strings
// often carry trailing detail, e.g. "0 (0 0)" or "33 (Min/Max 19/45)".
func leadingInt(s string) (int64, bool) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, false
	}
	return util.OptionalInt(fields[0])
}
