package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dhealth/diskscope/model"
)

// lsblk -J emitted every value as a string until util-linux 2.37
// switched to native JSON types. These wrappers accept both shapes.

type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "true", "1":
		*b = true
	default:
		*b = false
	}
	return nil
}

type flexUint64 uint64

func (u *flexUint64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*u = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		*u = 0
		return nil
	}
	*u = flexUint64(v)
	return nil
}

// lsblkDevice is the relevant subset of lsblk --json output.
type lsblkDevice struct {
	Name   string     `json:"name"`
	Model  string     `json:"model"`
	Serial string     `json:"serial"`
	Type   string     `json:"type"`
	Tran   string     `json:"tran"`
	Size   flexUint64 `json:"size"`
	Rota   flexBool   `json:"rota"`
}

// ListBlockDevices enumerates whole disks via lsblk. Partitions, loop
// devices and CD-ROMs are filtered out. Zero block devices is a valid
// result: an empty slice and no error.
func ListBlockDevices(ctx context.Context, timeout time.Duration) ([]model.DeviceInfo, error) {
	res, err := runTool(ctx, timeout, "lsblk",
		"-J", "-b", "-o", "NAME,MODEL,SERIAL,TYPE,TRAN,SIZE,ROTA")
	if err != nil {
		return nil, err
	}
	if res.exit != 0 {
		return nil, fmt.Errorf("lsblk: exit status %d: %s", res.exit, strings.TrimSpace(string(res.stderr)))
	}

	devices, err := parseLsblk(res.stdout)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("count", len(devices)).Msg("block devices enumerated")
	return devices, nil
}

// parseLsblk maps lsblk --json output to whole-disk device infos.
func parseLsblk(data []byte) ([]model.DeviceInfo, error) {
	var out struct {
		Blockdevices []lsblkDevice `json:"blockdevices"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("lsblk: %w: %v", ErrParse, err)
	}

	devices := make([]model.DeviceInfo, 0, len(out.Blockdevices))
	for _, dev := range out.Blockdevices {
		if dev.Type != "disk" {
			continue
		}
		devices = append(devices, model.DeviceInfo{
			Path:       "/dev/" + dev.Name,
			Name:       dev.Name,
			Model:      strings.TrimSpace(dev.Model),
			Serial:     strings.TrimSpace(dev.Serial),
			Transport:  dev.Tran,
			SizeBytes:  uint64(dev.Size),
			Rotational: bool(dev.Rota),
		})
	}
	return devices, nil
}
