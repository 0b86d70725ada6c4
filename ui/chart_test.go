package ui

import (
	"strings"
	"testing"
)

func TestResampleData(t *testing.T) {
	tests := []struct {
		name   string
		data   []float64
		width  int
		want   []float64
	}{
		{"empty", nil, 10, nil},
		{"fits already", []float64{1, 2, 3}, 10, []float64{1, 2, 3}},
		{"halved", []float64{1, 3, 5, 7}, 2, []float64{2, 6}},
		{"thirds", []float64{3, 3, 3, 9, 9, 9}, 2, []float64{3, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resampleData(tt.data, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("bucket %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAutoScale(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want float64
	}{
		{"empty", nil, 5},
		{"all zero", []float64{0, 0}, 5},
		{"small", []float64{0.5}, 1},
		{"tens", []float64{7}, 10},
		{"hundreds", []float64{180}, 250},
		{"thousands", []float64{900}, 2500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := autoScale(tt.data); got != tt.want {
				t.Errorf("autoScale = %v, want %v", got, tt.want)
			}
		})
	}

	// beyond the nice-value table the raw headroom target is returned
	if got := autoScale([]float64{20000}); got < 20000 {
		t.Errorf("autoScale(20000) = %v, want at least the data max", got)
	}
}

func TestAreaChartShape(t *testing.T) {
	data := []float64{10, 50, 100, 200, 400}
	out := areaChart(data, "Read speed MB/s", 60, 5, 500, speedChartColor(500))

	lines := strings.Split(out, "\n")
	// title + height rows + axis + x labels
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want 8:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "Read speed MB/s") {
		t.Errorf("title missing: %q", lines[0])
	}
	if !strings.Contains(lines[0], "now: 400.0") {
		t.Errorf("last value missing: %q", lines[0])
	}
	if !strings.Contains(lines[len(lines)-1], "0%") || !strings.Contains(lines[len(lines)-1], "100%") {
		t.Errorf("x labels missing: %q", lines[len(lines)-1])
	}
}
