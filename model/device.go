package model

// DeviceInfo describes one block device reported by the enumerator.
type DeviceInfo struct {
	Path       string // e.g., "/dev/sda", "/dev/nvme0n1"
	Name       string // short name: "sda", "nvme0n1"
	Model      string
	Serial     string
	Transport  string // sata, nvme, usb, ...
	SizeBytes  uint64
	Rotational bool // true for spinning disks

	// Filled in by enrichment, empty when no partition is mounted.
	Mounts []MountUsage

	// Cumulative IO counters for the whole device, zero when unavailable.
	ReadBytes  uint64
	WriteBytes uint64
}

// MountUsage is filesystem usage for one mounted partition of a device.
type MountUsage struct {
	Partition  string // e.g., "/dev/sda1"
	Mountpoint string
	Fstype     string
	TotalBytes uint64
	UsedBytes  uint64
	UsedPct    float64
}
