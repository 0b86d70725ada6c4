package model

import "testing"

func TestWarnCount(t *testing.T) {
	tests := []struct {
		name string
		rep  SmartReport
		want int
	}{
		{"no attributes", SmartReport{}, 0},
		{
			"all ok",
			SmartReport{Attributes: []SmartAttribute{
				{Name: "a", Health: HealthOK},
				{Name: "b", Health: HealthOK},
			}},
			0,
		},
		{
			"mixed",
			SmartReport{Attributes: []SmartAttribute{
				{Name: "a", Health: HealthOK},
				{Name: "b", Health: HealthWarn},
				{Name: "c", Health: HealthWarn},
			}},
			2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rep.WarnCount(); got != tt.want {
				t.Errorf("WarnCount = %d, want %d", got, tt.want)
			}
		})
	}
}
