package playback

import "time"

// Config controls the synchronizer's clock and drift behavior.
type Config struct {
	// TickInterval is the manual fixed-step clock period.
	TickInterval time.Duration

	// DriftCheckInterval bounds how often audio drift is measured;
	// checking every frame would be wasted work.
	DriftCheckInterval time.Duration

	// DriftToleranceVideo is the max audio drift (seconds) tolerated
	// while the media element clock is authoritative. Drift beyond it is
	// hard-seeked: drift this large indicates a stall, not jitter.
	DriftToleranceVideo float64

	// DriftToleranceManual is the looser tolerance under the manual
	// clock, whose per-tick granularity is coarser.
	DriftToleranceManual float64

	// SeekSuppression is how long after a seek native timeupdate events
	// and drift checks are ignored, avoiding races with in-flight events.
	SeekSuppression time.Duration
}

// DefaultConfig returns the production clock settings.
func DefaultConfig() Config {
	return Config{
		TickInterval:         16 * time.Millisecond,
		DriftCheckInterval:   100 * time.Millisecond,
		DriftToleranceVideo:  0.3,
		DriftToleranceManual: 0.5,
		SeekSuppression:      100 * time.Millisecond,
	}
}
