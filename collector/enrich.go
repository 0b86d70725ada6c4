package collector

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/dhealth/diskscope/model"
)

// EnrichDevices attaches mounted-filesystem usage and cumulative IO
// counters to each enumerated device. The input slice is not mutated;
// a new slice is returned. Enrichment is best effort: any probe failure
// leaves the corresponding fields zero.
func EnrichDevices(devs []model.DeviceInfo) []model.DeviceInfo {
	out := make([]model.DeviceInfo, len(devs))
	copy(out, devs)

	parts, err := disk.Partitions(false)
	if err != nil {
		log.Debug().Err(err).Msg("partition probe failed")
		parts = nil
	}

	counters, err := disk.IOCounters()
	if err != nil {
		log.Debug().Err(err).Msg("io counter probe failed")
		counters = nil
	}

	for i := range out {
		for _, p := range parts {
			if !partitionOf(p.Device, out[i].Path) {
				continue
			}
			usage, err := disk.Usage(p.Mountpoint)
			if err != nil {
				continue
			}
			out[i].Mounts = append(out[i].Mounts, model.MountUsage{
				Partition:  p.Device,
				Mountpoint: p.Mountpoint,
				Fstype:     p.Fstype,
				TotalBytes: usage.Total,
				UsedBytes:  usage.Used,
				UsedPct:    usage.UsedPercent,
			})
		}
		if c, ok := counters[out[i].Name]; ok {
			out[i].ReadBytes = c.ReadBytes
			out[i].WriteBytes = c.WriteBytes
		}
	}
	return out
}

// partitionOf reports whether partition dev (e.g. /dev/sda1,
// /dev/nvme0n1p2) belongs to whole disk path (e.g. /dev/sda,
// /dev/nvme0n1). The disk itself also matches: some devices are
// formatted without a partition table.
func partitionOf(partition, diskPath string) bool {
	if partition == diskPath {
		return true
	}
	if !strings.HasPrefix(partition, diskPath) {
		return false
	}
	rest := partition[len(diskPath):]
	// NVMe and mmc partitions carry a "p" separator: nvme0n1p1
	rest = strings.TrimPrefix(rest, "p")
	if rest == "" {
		return false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
