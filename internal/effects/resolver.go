package effects

import (
	"sync"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// InitialSizeRatio is the idle-state inset of the video within its canvas;
// all computed scales are relative to it.
const InitialSizeRatio = 0.94

// Transition durations (seconds) hinting how the render target should
// animate toward the new transform. Releasing to neutral is deliberately
// slower than engaging a zoom.
const (
	EngageTransitionSec  = 0.3
	ReleaseTransitionSec = 0.8
)

// Transform is the single composited camera transform for a frame.
// Translation is in percent units with the transform origin fixed at the
// frame center; the rendering surface is expected to clip overflow.
type Transform struct {
	Scale         float64 `json:"scale"`
	TranslateX    float64 `json:"translateX"`
	TranslateY    float64 `json:"translateY"`
	Active        bool    `json:"active"`
	TransitionSec float64 `json:"transitionSec"`
}

// Neutral returns the idle transform: inset scale, no translation.
func Neutral() Transform {
	return Transform{Scale: InitialSizeRatio, TransitionSec: ReleaseTransitionSec}
}

// ActiveEffects filters effects whose [start, end] interval contains t.
// Both bounds are inclusive, unlike the progress lower bound: an effect is
// "current" exactly at its boundary instants even though its rendered
// progress is 0 there.
func ActiveEffects(effects []model.DisplayEffect, t float64) []model.DisplayEffect {
	var active []model.DisplayEffect
	for _, e := range effects {
		if t >= e.Start && t <= e.End {
			active = append(active, e)
		}
	}
	return active
}

// Resolve picks the single governing effect from a set of concurrently
// active ones: the last-starting effect wins, matching authoring order
// where later edits are layered on top. Returns nil for an empty set.
func Resolve(active []model.DisplayEffect) *model.DisplayEffect {
	if len(active) == 0 {
		return nil
	}
	winner := 0
	for i := 1; i < len(active); i++ {
		if active[i].Start >= active[winner].Start {
			winner = i
		}
	}
	return &active[winner]
}

// ZoomTransform composes the camera-zoom transform for a resolved effect.
// The translation re-centers the anchor point under a fixed-origin scale
// rather than scaling from the anchor, keeping the transform origin at the
// frame center for correct compositing.
func ZoomTransform(progress, anchorX, anchorY, targetScale float64) Transform {
	scale := 1 + (targetScale-1)*progress
	return Transform{
		Scale:         InitialSizeRatio * scale,
		TranslateX:    (0.5 - anchorX) * (scale - 1) * 100,
		TranslateY:    (0.5 - anchorY) * (scale - 1) * 100,
		Active:        true,
		TransitionSec: EngageTransitionSec,
	}
}

// Resolver computes per-frame transforms for a set of effects rendered
// against global timeline time. Recording dimensions must be known before
// transforms resolve to anything but neutral. Safe for concurrent use;
// the effect set and recording size may be swapped while frames resolve.
type Resolver struct {
	mu          sync.RWMutex
	effects     []model.DisplayEffect
	recordingW  float64
	recordingH  float64
	easeInFrac  float64
	easeOutFrac float64
	timeWindow  float64
	proximity   float64
	logger      logging.Logger
}

// NewResolver builds a Resolver over effects with default phase fractions
// and continuation thresholds.
func NewResolver(effects []model.DisplayEffect, recordingW, recordingH float64, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewStdoutLogger("Resolver")
	}
	return &Resolver{
		effects:     effects,
		recordingW:  recordingW,
		recordingH:  recordingH,
		easeInFrac:  DefaultEaseInFrac,
		easeOutFrac: DefaultEaseOutFrac,
		timeWindow:  DefaultContinuationWindow,
		proximity:   DefaultBoundsProximity,
		logger:      logger,
	}
}

// SetRecordingSize replaces the recording dimensions once known.
func (r *Resolver) SetRecordingSize(w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordingW = w
	r.recordingH = h
}

// SetEffects swaps the effect set, e.g. after an effect edit.
func (r *Resolver) SetEffects(effects []model.DisplayEffect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects = effects
}

// Effects returns the effect set the resolver operates on.
func (r *Resolver) Effects() []model.DisplayEffect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.effects
}

// FrameTransform resolves the governing zoom effect at timeline time t and
// returns its composited transform, or the neutral transform when no zoom
// effect governs. Missing bounds or unknown recording dimensions degrade
// to neutral rather than failing.
func (r *Resolver) FrameTransform(t float64) Transform {
	r.mu.RLock()
	defer r.mu.RUnlock()
	active := ActiveEffects(r.effects, t)

	// Non-zoom effect types pass through inert.
	zooms := active[:0:0]
	for _, e := range active {
		if e.Type == "zoom" && e.Target != nil && e.Target.Bounds != nil {
			zooms = append(zooms, e)
		}
	}

	e := Resolve(zooms)
	if e == nil {
		return Neutral()
	}

	norm, err := Normalize(*e.Target.Bounds, r.recordingW, r.recordingH)
	if err != nil {
		r.logger.Debug("skipping zoom, recording size unknown",
			logging.Field{Key: "start", Value: e.Start},
			logging.Field{Key: "end", Value: e.End})
		return Neutral()
	}

	cont := HasContinuation(*e, r.effects, r.timeWindow, r.proximity)
	progress := Progress(t, e.Start, e.End, r.easeInFrac, r.easeOutFrac, cont)

	targetScale := norm.AutoScale
	if e.Style != nil && e.Style.Zoom != nil && e.Style.Zoom.Scale != nil {
		targetScale = *e.Style.Zoom.Scale
	}

	return ZoomTransform(progress, norm.AnchorX, norm.AnchorY, targetScale)
}
