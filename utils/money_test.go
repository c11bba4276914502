package utils

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"whole", 100, 100},
		{"already two decimals", 99.99, 99.99},
		{"rounds up past half", 12.3456, 12.35},
		{"rounds down below half", 0.004, 0},
		{"rounds up above half", 0.006, 0.01},
		{"half rounds away from zero", 0.125, 0.13},
		{"negative half rounds away from zero", -0.125, -0.13},
		{"negative rounds toward larger magnitude", -0.006, -0.01},
		{"near-integer", 99.999, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
