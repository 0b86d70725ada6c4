package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var sb strings.Builder
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")

	switch m.tab {
	case TabDevices:
		sb.WriteString(m.renderDevices())
	case TabSmart:
		sb.WriteString(m.renderSmart())
	case TabBench:
		sb.WriteString(m.renderBench())
	case TabHistory:
		sb.WriteString(m.renderHistory())
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	return sb.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, 0, int(tabCount))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			parts = append(parts, activeTabStyle.Render(name))
		} else {
			parts = append(parts, tabStyle.Render(name))
		}
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return row + "  " + helpStyle.Render("? help  q quit")
}

func (m Model) renderStatus() string {
	// Status messages fade after a few seconds
	if m.status == "" || time.Since(m.statusTime) > 5*time.Second {
		return ""
	}
	if m.statusErr {
		return warnStyle.Render(m.status)
	}
	return dimStyle.Render(m.status)
}

func (m Model) renderHelp() string {
	help := `
  diskscope — disk health and benchmark console

  Global
    tab / shift+tab   switch tab
    1-4               jump to tab
    ?                 toggle this help
    q                 quit

  Devices
    j/k               select device
    r                 rescan block devices
    enter / c         SMART check selected device
    b                 benchmark selected device

  SMART
    j/k               scroll attributes
    s                 save report as JSON
    e                 export attributes as CSV
    w                 store report in history

  Benchmark
    x                 cancel running benchmark
    e                 export samples as CSV
    w                 store result in history

  History
    j/k               select entry
    enter             open stored report
    r                 reload

  Press any key to close.
`
	return panelStyle.Render(help)
}
