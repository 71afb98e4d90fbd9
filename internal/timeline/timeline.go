// Package timeline provides pure functions over the unified intro/video/outro
// time axis: active-clip lookup, timeline-time to media-time mapping and
// playback-mode classification. All functions are side-effect free.
package timeline

import (
	"errors"
	"fmt"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// Mode classifies which clock is authoritative at a timeline instant.
// Video is the only mode driven by the media element's own clock; intro and
// outro advance under the manual fixed-step clock.
type Mode string

const (
	ModeIntro Mode = "intro"
	ModeVideo Mode = "video"
	ModeOutro Mode = "outro"
)

var (
	ErrNoClips        = errors.New("timeline: no clips")
	ErrNoVideoClip    = errors.New("timeline: missing video clip")
	ErrClipsNotSorted = errors.New("timeline: clips not sorted by start")
)

// ActiveClip returns the clip containing timeline time t, or nil when t is
// out of range. Containment is start-inclusive, end-exclusive, except that
// the final clip also contains its end instant so the terminal frame still
// resolves to a clip.
func ActiveClip(tl *model.Timeline, t float64) *model.Clip {
	if tl == nil {
		return nil
	}
	for i := range tl.Clips {
		c := &tl.Clips[i]
		if t >= c.Start && t < c.End {
			return c
		}
		if i == len(tl.Clips)-1 && t == c.End {
			return c
		}
	}
	return nil
}

// PlaybackMode classifies timeline time t. Clips named anything other than
// "intro"/"outro" default to video mode. Returns ("", false) when t falls
// outside every clip; callers must treat that as terminal.
func PlaybackMode(tl *model.Timeline, t float64) (Mode, bool) {
	c := ActiveClip(tl, t)
	if c == nil {
		return "", false
	}
	switch c.Name {
	case "intro":
		return ModeIntro, true
	case "outro":
		return ModeOutro, true
	default:
		return ModeVideo, true
	}
}

// IsMediaVisible reports whether the clip active at t carries a video-typed
// media item.
func IsMediaVisible(tl *model.Timeline, t float64) bool {
	c := ActiveClip(tl, t)
	return c != nil && c.HasVideoMedia()
}

// TimelineToMediaTime maps global timeline time to the native time of the
// media-backed clip. Before the clip the media is parked at 0; at or after
// the clip's end it is parked at the clip's full duration.
func TimelineToMediaTime(tl *model.Timeline, t float64) float64 {
	v := tl.VideoClip()
	if v == nil {
		return 0
	}
	switch {
	case t < v.Start:
		return 0
	case t >= v.End:
		return v.Duration()
	default:
		return t - v.Start
	}
}

// MediaTimeToTimelineTime is the inverse mapping, valid only while the
// media clip is authoritative.
func MediaTimeToTimelineTime(tl *model.Timeline, mediaTime float64) float64 {
	v := tl.VideoClip()
	if v == nil {
		return mediaTime
	}
	return mediaTime + v.Start
}

// TotalDuration returns the end of the final clip, i.e. the full span of
// the unified axis (intro + video + outro).
func TotalDuration(tl *model.Timeline) float64 {
	if tl == nil || len(tl.Clips) == 0 {
		return 0
	}
	return tl.Clips[len(tl.Clips)-1].End
}

// Validate checks the clip partition invariant: clips sorted by start,
// intro starting at 0, contiguous (each end equals the next start) and
// exactly one clip named "video".
func Validate(tl *model.Timeline) error {
	if tl == nil || len(tl.Clips) == 0 {
		return ErrNoClips
	}
	if tl.Clips[0].Start != 0 {
		return fmt.Errorf("timeline: first clip starts at %v, want 0", tl.Clips[0].Start)
	}
	videoCount := 0
	for i := range tl.Clips {
		c := &tl.Clips[i]
		if c.End <= c.Start {
			return fmt.Errorf("timeline: clip %q has non-positive duration", c.Name)
		}
		if c.Name == "video" {
			videoCount++
		}
		if i > 0 {
			prev := &tl.Clips[i-1]
			if c.Start < prev.Start {
				return ErrClipsNotSorted
			}
			if prev.End != c.Start {
				return fmt.Errorf("timeline: gap between %q (end %v) and %q (start %v)", prev.Name, prev.End, c.Name, c.Start)
			}
		}
	}
	if videoCount != 1 {
		return ErrNoVideoClip
	}
	return nil
}
