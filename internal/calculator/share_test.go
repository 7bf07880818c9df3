package calculator

import (
	"math"
	"testing"
)

func TestDistributeProportionally(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		weights []float64
		want    []float64
	}{
		{
			name:    "proportional to weights",
			total:   90,
			weights: []float64{60, 30},
			want:    []float64{60, 30},
		},
		{
			name:    "zero weights fall back to equal split",
			total:   30,
			weights: []float64{0, 0, 0},
			want:    []float64{10, 10, 10},
		},
		{
			name:    "single recipient gets everything",
			total:   42.42,
			weights: []float64{7},
			want:    []float64{42.42},
		},
		{
			name:    "uneven thirds still sum to total",
			total:   100,
			weights: []float64{1, 1, 1},
			want:    []float64{100.0 / 3, 100.0 / 3, 100 - 200.0/3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistributeProportionally(tt.total, tt.weights)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			var sum float64
			for i := range got {
				sum += got[i]
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Errorf("share[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
			if sum != tt.total {
				t.Errorf("sum = %v, want exactly %v", sum, tt.total)
			}
		})
	}
}

func TestDistributeProportionallyEmpty(t *testing.T) {
	if got := DistributeProportionally(10, nil); got != nil {
		t.Errorf("DistributeProportionally(10, nil) = %v, want nil", got)
	}
}

func TestSafeDivide(t *testing.T) {
	if got := SafeDivide(10, 4, 0); got != 2.5 {
		t.Errorf("SafeDivide(10, 4, 0) = %v, want 2.5", got)
	}
	if got := SafeDivide(10, 0, 0.5); got != 0.5 {
		t.Errorf("SafeDivide(10, 0, 0.5) = %v, want fallback 0.5", got)
	}
}
