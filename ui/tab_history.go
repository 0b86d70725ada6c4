package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/dhealth/diskscope/util"
)

// refitHistTable rebuilds the stored-reports grid.
func (m *Model) refitHistTable() {
	rows := make([]table.Row, 0, len(m.histReports))
	for _, r := range m.histReports {
		rows = append(rows, table.Row{
			strconv.FormatInt(r.ID, 10),
			r.Device,
			string(r.Type),
			r.Overall,
			strconv.Itoa(r.WarnCount),
			strconv.Itoa(r.AttrCount),
			r.Collected.Format("2006-01-02 15:04:05"),
		})
	}
	m.histTable.SetRows(rows)
}

func (m Model) renderHistory() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("History"))
	sb.WriteString("\n\n")

	if m.histErr != "" {
		sb.WriteString("  " + warnStyle.Render(m.histErr) + "\n")
		return panelStyle.Render(sb.String())
	}

	if len(m.histReports) == 0 && len(m.histBenches) == 0 {
		sb.WriteString(dimStyle.Render("  nothing stored yet — press w on a report or benchmark\n"))
		return panelStyle.Render(sb.String())
	}

	if len(m.histReports) > 0 {
		sb.WriteString(labelStyle.Render("  Stored reports"))
		sb.WriteString("\n")
		sb.WriteString(m.histTable.View())
		sb.WriteString("\n\n")
	}

	if len(m.histBenches) > 0 {
		sb.WriteString(labelStyle.Render("  Stored benchmarks"))
		sb.WriteString("\n")
		for _, b := range m.histBenches {
			sb.WriteString(fmt.Sprintf("  #%-4d %-14s %s  avg %s  access %.3fms  (%d samples)\n",
				b.ID, b.Device,
				b.Started.Format("2006-01-02 15:04"),
				util.FormatSpeed(b.AvgReadMBps),
				b.AvgAccessMs,
				b.SampleCount))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("  enter open report   r reload"))
	return panelStyle.Render(sb.String())
}
