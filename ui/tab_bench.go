package ui

import (
	"fmt"
	"strings"

	"github.com/dhealth/diskscope/util"
)

func (m Model) renderBench() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Benchmark"))
	sb.WriteString("\n\n")

	if !m.benching && m.benchResult == nil && m.benchErr == "" {
		sb.WriteString(dimStyle.Render("  no benchmark yet — select a device and press b\n"))
		return panelStyle.Render(sb.String())
	}

	if m.benchErr != "" {
		sb.WriteString("  " + warnStyle.Render(m.benchErr) + "\n")
	}

	if m.benching && m.benchTotal > 0 {
		pct := float64(m.benchDone) / float64(m.benchTotal)
		sb.WriteString("  " + m.benchBar.ViewAs(pct))
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", m.benchDone, m.benchTotal)))
		sb.WriteString("\n\n")
	}

	if len(m.speeds) > 1 {
		width := m.width - 8
		if width < 30 {
			width = 30
		}
		maxVal := autoScale(m.speeds)
		sb.WriteString(areaChart(m.speeds, "Read speed MB/s", width, 8, maxVal, speedChartColor(maxVal)))
		sb.WriteString("\n\n")
	}

	if res := m.benchResult; res != nil {
		sb.WriteString(fmt.Sprintf("  %s %s    %s %s\n",
			labelStyle.Render("Device:"), valueStyle.Render(res.Device),
			labelStyle.Render("Block:"), valueStyle.Render(util.FormatBytes(uint64(res.BlockSize)))))
		sb.WriteString(fmt.Sprintf("  %s avg %s  min %s  max %s\n",
			labelStyle.Render("Read:"),
			okStyle.Render(util.FormatSpeed(res.AvgReadMBps)),
			valueStyle.Render(util.FormatSpeed(res.MinReadMBps)),
			valueStyle.Render(util.FormatSpeed(res.MaxReadMBps))))
		sb.WriteString(fmt.Sprintf("  %s avg %.3fms  min %.3fms  max %.3fms\n",
			labelStyle.Render("Access:"),
			res.AvgAccessMs, res.MinAccessMs, res.MaxAccessMs))
		sb.WriteString(fmt.Sprintf("  %s %d samples in %.1fs\n",
			labelStyle.Render("Run:"), len(res.Samples), res.Elapsed.Seconds()))
	}

	sb.WriteString("\n")
	if m.benching {
		sb.WriteString(helpStyle.Render("  x cancel"))
	} else {
		sb.WriteString(helpStyle.Render("  b rerun   e export CSV   w store in history"))
	}
	return panelStyle.Render(sb.String())
}
