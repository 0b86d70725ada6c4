package collector

import "testing"

func TestPartitionOf(t *testing.T) {
	tests := []struct {
		partition string
		disk      string
		want      bool
	}{
		{"/dev/sda1", "/dev/sda", true},
		{"/dev/sda12", "/dev/sda", true},
		{"/dev/sda", "/dev/sda", true},
		{"/dev/sdab", "/dev/sda", false},
		{"/dev/sdab1", "/dev/sda", false},
		{"/dev/nvme0n1p1", "/dev/nvme0n1", true},
		{"/dev/nvme0n1p12", "/dev/nvme0n1", true},
		{"/dev/nvme0n1", "/dev/nvme0n1", true},
		{"/dev/nvme0n12", "/dev/nvme0n1", true},
		{"/dev/nvme1n1p1", "/dev/nvme0n1", false},
		{"/dev/mmcblk0p2", "/dev/mmcblk0", true},
		{"/dev/sdb1", "/dev/sda", false},
		{"/dev/sda1x", "/dev/sda", false},
	}
	for _, tt := range tests {
		if got := partitionOf(tt.partition, tt.disk); got != tt.want {
			t.Errorf("partitionOf(%q, %q) = %v, want %v", tt.partition, tt.disk, got, tt.want)
		}
	}
}
