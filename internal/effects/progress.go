package effects

import (
	"math"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// Default phase fractions and continuation thresholds. The ease fractions
// are intentionally asymmetric: fast snap-in, slow release.
const (
	DefaultEaseInFrac  = 0.20
	DefaultEaseOutFrac = 0.40

	// DefaultContinuationWindow is how close (seconds) a successor effect
	// must start to the predecessor's end to count as a continuation.
	DefaultContinuationWindow = 0.5

	// DefaultBoundsProximity is the max center-to-center distance
	// (recording pixels) for two targets to count as the same screen focus.
	DefaultBoundsProximity = 50.0
)

// Progress computes the 0..1 zoom progress of a time-boxed effect at
// instant now. The lower bound is exclusive (progress is exactly 0 at
// start); past the end the effect reads 1 when a continuation follows and
// 0 otherwise, so adjacent effects at the same focus do not flicker
// through a zoom-out/zoom-in cycle.
func Progress(now, start, end, easeInFrac, easeOutFrac float64, hasContinuation bool) float64 {
	dur := end - start
	if dur <= 0 {
		return 0
	}
	t := (now - start) / dur
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		if hasContinuation {
			return 1
		}
		return 0
	}

	if easeInFrac > 0 && t < easeInFrac {
		return EaseInOutCubic(t / easeInFrac)
	}
	if easeOutFrac > 0 && t > 1-easeOutFrac {
		if hasContinuation {
			// Hold the zoom; the successor picks it up seamlessly.
			return 1
		}
		return EaseInOutQuad((1 - t) / easeOutFrac)
	}
	return 1
}

// HasContinuation reports whether another effect begins within timeWindow
// of e's end at a similar screen position. This is a heuristic stand-in
// for an explicit successor reference in the authored data: a lingering
// screen focus spans two authored effect windows without a merge.
func HasContinuation(e model.DisplayEffect, all []model.DisplayEffect, timeWindow, proximity float64) bool {
	if e.Target == nil || e.Target.Bounds == nil {
		return false
	}
	for i := range all {
		other := &all[i]
		if other.Start == e.Start && other.End == e.End {
			continue
		}
		if math.Abs(other.Start-e.End) > timeWindow {
			continue
		}
		if other.Target == nil || other.Target.Bounds == nil {
			continue
		}
		dx := other.Target.Bounds.CenterX() - e.Target.Bounds.CenterX()
		dy := other.Target.Bounds.CenterY() - e.Target.Bounds.CenterY()
		if math.Hypot(dx, dy) <= proximity {
			return true
		}
	}
	return false
}
