package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"github.com/dhealth/diskscope/model"
	"github.com/dhealth/diskscope/util"
)

func ataColumns() []table.Column {
	return []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Name", Width: 26},
		{Title: "Value", Width: 6},
		{Title: "Worst", Width: 6},
		{Title: "Thresh", Width: 7},
		{Title: "Raw", Width: 20},
		{Title: "Health", Width: 6},
	}
}

func nvmeColumns() []table.Column {
	return []table.Column{
		{Title: "Name", Width: 30},
		{Title: "Value", Width: 22},
		{Title: "Raw", Width: 22},
		{Title: "Health", Width: 6},
	}
}

// refitAttrTable rebuilds the attribute grid for the current report.
// Column layout follows the disk type, as in the CSV export.
func (m *Model) refitAttrTable() {
	if m.report == nil {
		m.attrTable.SetRows(nil)
		return
	}

	if m.report.Type == model.DiskTypeNVMe {
		m.attrTable.SetColumns(nvmeColumns())
		rows := make([]table.Row, 0, len(m.report.Attributes))
		for _, a := range m.report.Attributes {
			rows = append(rows, table.Row{a.Name, a.Value, a.Raw, string(a.Health)})
		}
		m.attrTable.SetRows(rows)
		return
	}

	m.attrTable.SetColumns(ataColumns())
	rows := make([]table.Row, 0, len(m.report.Attributes))
	for _, a := range m.report.Attributes {
		rows = append(rows, table.Row{
			strconv.Itoa(a.ID), a.Name, a.Value, a.Worst, a.Thresh, a.Raw, string(a.Health),
		})
	}
	m.attrTable.SetRows(rows)
}

func (m Model) renderSmart() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SMART Data"))
	if m.checking {
		sb.WriteString(dimStyle.Render("  collecting..."))
	}
	sb.WriteString("\n\n")

	if m.report == nil {
		sb.WriteString(dimStyle.Render("  no report yet — select a device and press enter\n"))
		return panelStyle.Render(sb.String())
	}

	r := m.report
	sb.WriteString(fmt.Sprintf("  %s %s    %s %s    %s %s\n",
		labelStyle.Render("Device:"), valueStyle.Render(r.Device),
		labelStyle.Render("Type:"), valueStyle.Render(string(r.Type)),
		labelStyle.Render("Health:"), overallStyle(r.Overall).Render(r.Overall)))

	if r.ModelName != "" || r.Serial != "" {
		sb.WriteString(fmt.Sprintf("  %s %s    %s %s\n",
			labelStyle.Render("Model:"), valueStyle.Render(r.ModelName),
			labelStyle.Render("Serial:"), valueStyle.Render(r.Serial)))
	}

	details := make([]string, 0, 4)
	if r.Capacity > 0 {
		details = append(details, "Capacity: "+util.FormatBytes(r.Capacity))
	}
	if r.Temp > 0 {
		details = append(details, fmt.Sprintf("Temp: %d°C", r.Temp))
	}
	if r.PowerOnHrs > 0 {
		details = append(details, "Power-on: "+util.FormatHours(r.PowerOnHrs))
	}
	if n := r.WarnCount(); n > 0 {
		details = append(details, warnStyle.Render(fmt.Sprintf("%d warning(s)", n)))
	}
	if len(details) > 0 {
		sb.WriteString("  " + dimStyle.Render(strings.Join(details, "    ")) + "\n")
	}

	if m.reportErr != "" {
		sb.WriteString("\n  " + warnStyle.Render(m.reportErr) + "\n")
	}

	sb.WriteString("\n")
	if len(r.Attributes) == 0 {
		sb.WriteString(dimStyle.Render("  no attributes parsed\n"))
	} else {
		sb.WriteString(m.attrTable.View())
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render("  s save JSON   e export CSV   w store in history   c rescan"))
	return panelStyle.Render(sb.String())
}
