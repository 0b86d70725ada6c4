package util

import "fmt"

// FormatSpeed renders a MB/s value with a unit matching its magnitude.
func FormatSpeed(mbps float64) string {
	switch {
	case mbps >= 1024:
		return fmt.Sprintf("%.2f GB/s", mbps/1024)
	case mbps >= 1:
		return fmt.Sprintf("%.1f MB/s", mbps)
	case mbps >= 0.001:
		return fmt.Sprintf("%.1f KB/s", mbps*1024)
	default:
		return fmt.Sprintf("%.0f B/s", mbps*1024*1024)
	}
}

// FormatBytes renders a byte count in the largest fitting binary unit.
func FormatBytes(b uint64) string {
	switch {
	case b >= 1<<40:
		return fmt.Sprintf("%.1fT", float64(b)/(1<<40))
	case b >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%dB", b)
	}
}

// FormatHours renders power-on hours as days and hours.
func FormatHours(h int) string {
	if h < 24 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dd %dh", h/24, h%24)
}
