package ui

import (
	"fmt"
	"strings"

	"github.com/dhealth/diskscope/model"
	"github.com/dhealth/diskscope/util"
)

func (m Model) renderDevices() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Block Devices"))
	if m.scanning {
		sb.WriteString(dimStyle.Render("  scanning..."))
	}
	sb.WriteString("\n\n")

	if len(m.devices) == 0 && !m.scanning {
		sb.WriteString(dimStyle.Render("  no block devices found — press r to rescan\n"))
		return panelStyle.Render(sb.String())
	}

	header := fmt.Sprintf("  %-14s %-24s %8s  %-6s %-5s %s",
		"DEVICE", "MODEL", "SIZE", "TRAN", "TYPE", "MOUNTS")
	sb.WriteString(labelStyle.Render(header))
	sb.WriteString("\n")

	for i, dev := range m.devices {
		line := fmt.Sprintf("  %-14s %-24s %8s  %-6s %-5s %s",
			dev.Path,
			truncate(dev.Model, 24),
			util.FormatBytes(dev.SizeBytes),
			dev.Transport,
			diskKind(dev),
			mountSummary(dev),
		)
		if i == m.selected {
			sb.WriteString(selectedStyle.Render(line))
		} else {
			sb.WriteString(valueStyle.Render(line))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("  enter/c SMART check   b benchmark   r rescan"))
	return panelStyle.Render(sb.String())
}

func diskKind(dev model.DeviceInfo) string {
	if strings.HasPrefix(dev.Name, "nvme") {
		return "nvme"
	}
	if dev.Rotational {
		return "hdd"
	}
	return "ssd"
}

func mountSummary(dev model.DeviceInfo) string {
	if len(dev.Mounts) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(dev.Mounts))
	for _, mu := range dev.Mounts {
		parts = append(parts, fmt.Sprintf("%s %.0f%%", mu.Mountpoint, mu.UsedPct))
	}
	return strings.Join(parts, ", ")
}

// truncate shortens s to n runes. Model strings can carry multibyte
// characters, so slicing happens on runes, never bytes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
