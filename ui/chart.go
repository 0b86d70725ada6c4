package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// areaChart renders an area chart with Y-axis labels and sub-cell
// resolution using fractional block characters.
//
//	Read speed MB/s                                now: 412.0
//	500│
//	400│          ████
//	300│        ████████       ██
//	200│    ████████████████████████
//	100│████████████████████████████████
//	  0│████████████████████████████████████████
//	   └────────────────────────────────────────
//	   0%                                    100%
func areaChart(data []float64, label string, width, height int, maxVal float64,
	colorFn func(float64) lipgloss.Style) string {

	if height < 2 {
		height = 2
	}
	if maxVal <= 0 {
		maxVal = 1
	}

	axisW := 5 // e.g. " 400│"
	chartW := width - axisW - 1
	if chartW < 10 {
		chartW = 10
	}

	resampled := resampleData(data, chartW)

	// Sub-block characters for fractional fill within a cell
	subBlocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var sb strings.Builder

	last := float64(0)
	if len(resampled) > 0 {
		last = resampled[len(resampled)-1]
	}
	sb.WriteString(titleStyle.Render(label))
	sb.WriteString(dimStyle.Render(fmt.Sprintf("  now: %.1f", last)))
	sb.WriteString("\n")

	for row := height - 1; row >= 0; row-- {
		yVal := (float64(row+1) / float64(height)) * maxVal
		sb.WriteString(dimStyle.Render(fmt.Sprintf("%4.0f", yVal)))
		sb.WriteString(dimStyle.Render("│"))

		for col := 0; col < len(resampled); col++ {
			val := resampled[col]
			normalized := val / maxVal * float64(height)

			cellBottom := float64(row)
			cellTop := float64(row + 1)

			var ch rune
			if normalized >= cellTop {
				ch = '█'
			} else if normalized <= cellBottom {
				ch = ' '
			} else {
				fraction := normalized - cellBottom
				idx := int(fraction * 8)
				if idx >= len(subBlocks) {
					idx = len(subBlocks) - 1
				}
				if idx < 0 {
					idx = 0
				}
				ch = subBlocks[idx]
			}

			if ch == ' ' {
				sb.WriteRune(' ')
			} else {
				sb.WriteString(colorFn(val).Render(string(ch)))
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(dimStyle.Render("    └" + strings.Repeat("─", len(resampled))))
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render("    0%" + strings.Repeat(" ", max(1, len(resampled)-6)) + "100%"))

	return sb.String()
}

// resampleData reduces data to fit targetWidth columns, averaging each
// bucket of source values.
func resampleData(data []float64, targetWidth int) []float64 {
	if len(data) == 0 || len(data) <= targetWidth {
		return data
	}
	result := make([]float64, targetWidth)
	for i := 0; i < targetWidth; i++ {
		srcStart := i * len(data) / targetWidth
		srcEnd := (i + 1) * len(data) / targetWidth
		if srcEnd > len(data) {
			srcEnd = len(data)
		}
		if srcStart >= srcEnd {
			srcStart = srcEnd - 1
			if srcStart < 0 {
				srcStart = 0
			}
		}
		sum := float64(0)
		count := 0
		for j := srcStart; j < srcEnd; j++ {
			sum += data[j]
			count++
		}
		if count > 0 {
			result[i] = sum / float64(count)
		}
	}
	return result
}

// autoScale computes a rounded-up Y-axis ceiling with headroom.
func autoScale(data []float64) float64 {
	maxVal := float64(0)
	for _, v := range data {
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal <= 0 {
		return 5
	}
	target := maxVal * 1.3
	nice := []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}
	for _, n := range nice {
		if target <= n {
			return n
		}
	}
	return target
}

// speedChartColor colors read-speed values relative to the chart max.
func speedChartColor(maxVal float64) func(float64) lipgloss.Style {
	return func(val float64) lipgloss.Style {
		switch {
		case val < maxVal*0.25:
			return critStyle
		case val < maxVal*0.5:
			return warnStyle
		default:
			return okStyle
		}
	}
}
