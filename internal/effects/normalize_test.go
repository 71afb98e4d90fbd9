package effects

import (
	"math"
	"testing"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

func TestNormalizeAnchor(t *testing.T) {
	nb, err := Normalize(model.BoundingBox{X: 400, Y: 200, Width: 200, Height: 100}, 1000, 500)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(nb.AnchorX-0.5) > 1e-9 {
		t.Errorf("AnchorX = %v, want 0.5", nb.AnchorX)
	}
	if math.Abs(nb.AnchorY-0.5) > 1e-9 {
		t.Errorf("AnchorY = %v, want 0.5", nb.AnchorY)
	}
}

func TestNormalizeEffectiveRatioAndAutoScale(t *testing.T) {
	// 100x50 box in a 1000x500 recording: areaRatio 0.01, width/height
	// ratios both 0.1, so the dominant dimension wins and the scale lands
	// exactly on the medium band boundary.
	nb, err := Normalize(model.BoundingBox{X: 0, Y: 0, Width: 100, Height: 50}, 1000, 500)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(nb.EffectiveRatio-0.1) > 1e-9 {
		t.Errorf("EffectiveRatio = %v, want 0.1", nb.EffectiveRatio)
	}
	if math.Abs(nb.AutoScale-1.5) > 1e-9 {
		t.Errorf("AutoScale = %v, want 1.5", nb.AutoScale)
	}
}

func TestAutoScaleBands(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  float64
	}{
		{"vanishing target", 0, 2.5},
		{"tiny band midpoint", 0.005, 2.25},
		{"small band start", 0.01, 2.0},
		{"small band midpoint", 0.055, 1.75},
		{"medium band start", 0.10, 1.5},
		{"medium band midpoint", 0.30, 1.35},
		{"large target", 0.50, 1.15},
		{"full frame", 1.0, 1.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := autoScaleFor(tt.ratio)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("autoScaleFor(%v) = %v, want %v", tt.ratio, got, tt.want)
			}
		})
	}
}

func TestAutoScaleClamped(t *testing.T) {
	for ratio := 0.0; ratio <= 1.5; ratio += 0.01 {
		s := autoScaleFor(ratio)
		if s < MinAutoScale || s > MaxAutoScale {
			t.Fatalf("autoScaleFor(%v) = %v escapes [%v, %v]", ratio, s, MinAutoScale, MaxAutoScale)
		}
	}
}

func TestNormalizeGuardsRecordingSize(t *testing.T) {
	if _, err := Normalize(model.BoundingBox{Width: 10, Height: 10}, 0, 500); err == nil {
		t.Error("zero recording width should be rejected")
	}
	if _, err := Normalize(model.BoundingBox{Width: 10, Height: 10}, 1000, -1); err == nil {
		t.Error("negative recording height should be rejected")
	}
}
