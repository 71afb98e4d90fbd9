package effects

import (
	"errors"
	"math"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// ErrInvalidRecordingSize is returned when bounds are normalized before the
// recording dimensions are known.
var ErrInvalidRecordingSize = errors.New("effects: recording dimensions must be positive")

// Auto-scale clamp range and band boundaries. Small targets zoom in hard,
// large targets barely at all; each band interpolates linearly between its
// boundary scales.
const (
	MinAutoScale = 1.15
	MaxAutoScale = 3.0
)

// NormalizedBounds is the viewport-relative form of a recorded target
// rectangle. Anchor coordinates are fractions of the recording size;
// AutoScale is the derived zoom factor. Instances are replaced wholesale
// whenever recording dimensions or effects change, never mutated.
type NormalizedBounds struct {
	AnchorX        float64 `json:"anchorX"`
	AnchorY        float64 `json:"anchorY"`
	AutoScale      float64 `json:"autoScale"`
	EffectiveRatio float64 `json:"effectiveRatio"`
}

// Normalize converts a recorded pixel rectangle into a normalized anchor
// point plus an automatic zoom factor. The effective ratio is the max of
// the area ratio and the dominant dimension ratio, so thin-but-wide targets
// are treated as large rather than tiny.
func Normalize(bounds model.BoundingBox, recordingW, recordingH float64) (NormalizedBounds, error) {
	if recordingW <= 0 || recordingH <= 0 {
		return NormalizedBounds{}, ErrInvalidRecordingSize
	}

	anchorX := bounds.CenterX() / recordingW
	anchorY := bounds.CenterY() / recordingH

	areaRatio := (bounds.Width * bounds.Height) / (recordingW * recordingH)
	widthRatio := bounds.Width / recordingW
	heightRatio := bounds.Height / recordingH
	dominantRatio := math.Max(widthRatio, heightRatio)
	effectiveRatio := math.Max(areaRatio, dominantRatio)

	return NormalizedBounds{
		AnchorX:        anchorX,
		AnchorY:        anchorY,
		AutoScale:      autoScaleFor(effectiveRatio),
		EffectiveRatio: effectiveRatio,
	}, nil
}

// autoScaleFor maps an effective size ratio to a zoom factor via
// piecewise-linear bands, clamped to [MinAutoScale, MaxAutoScale].
func autoScaleFor(ratio float64) float64 {
	var scale float64
	switch {
	case ratio < 0.01:
		scale = bandScale(ratio, 0, 0.01, 2.5, 2.0)
	case ratio < 0.10:
		scale = bandScale(ratio, 0.01, 0.10, 2.0, 1.5)
	case ratio < 0.50:
		scale = bandScale(ratio, 0.10, 0.50, 1.5, 1.2)
	default:
		scale = MinAutoScale
	}
	return math.Min(MaxAutoScale, math.Max(MinAutoScale, scale))
}

// bandScale interpolates from the scale at the band's lower boundary down
// to the scale at its upper boundary.
func bandScale(ratio, lo, hi, scaleAtLo, scaleAtHi float64) float64 {
	frac := (ratio - lo) / (hi - lo)
	return scaleAtLo + (scaleAtHi-scaleAtLo)*frac
}
