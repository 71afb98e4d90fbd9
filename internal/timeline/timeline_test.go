package timeline_test

import (
	"math"
	"testing"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/timeline"
)

func testTimeline() *model.Timeline {
	return &model.Timeline{
		VideoDuration: 45,
		Clips: []model.Clip{
			{Name: "intro", Start: 0, End: 3},
			{Name: "video", Start: 3, End: 42.255, Media: []model.MediaItem{{Type: "video", URL: "session.mp4"}}},
			{Name: "outro", Start: 42.255, End: 45.255},
		},
	}
}

func TestActiveClipPartition(t *testing.T) {
	tl := testTimeline()

	// Every instant inside the timeline resolves to exactly one clip.
	for ts := 0.0; ts < timeline.TotalDuration(tl); ts += 0.25 {
		c := timeline.ActiveClip(tl, ts)
		if c == nil {
			t.Fatalf("no active clip at t=%v", ts)
		}
		if ts < c.Start || ts >= c.End {
			t.Errorf("t=%v resolved to clip %q [%v,%v)", ts, c.Name, c.Start, c.End)
		}
	}

	// Boundaries belong to the later clip.
	if c := timeline.ActiveClip(tl, 3); c == nil || c.Name != "video" {
		t.Errorf("t=3 should belong to video, got %+v", c)
	}

	// The terminal instant still resolves (final clip is end-inclusive).
	if c := timeline.ActiveClip(tl, 45.255); c == nil || c.Name != "outro" {
		t.Errorf("terminal instant should resolve to outro, got %+v", c)
	}

	if c := timeline.ActiveClip(tl, 99); c != nil {
		t.Errorf("out-of-range time resolved to %q", c.Name)
	}
}

func TestTimeMappingRoundTrip(t *testing.T) {
	tl := testTimeline()

	for ts := 3.0; ts < 42.255; ts += 0.5 {
		media := timeline.TimelineToMediaTime(tl, ts)
		back := timeline.MediaTimeToTimelineTime(tl, media)
		if math.Abs(back-ts) > 1e-9 {
			t.Errorf("round trip t=%v -> media=%v -> %v", ts, media, back)
		}
	}
}

func TestTimelineToMediaTimeParking(t *testing.T) {
	tl := testTimeline()

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"inside media clip", 10, 7},
		{"before media clip", 1.5, 0},
		{"at media clip start", 3, 0},
		{"at media clip end", 42.255, 39.255},
		{"after media clip", 44, 39.255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := timeline.TimelineToMediaTime(tl, tt.t)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("TimelineToMediaTime(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestPlaybackMode(t *testing.T) {
	tl := testTimeline()

	tests := []struct {
		t    float64
		want timeline.Mode
	}{
		{1, timeline.ModeIntro},
		{10, timeline.ModeVideo},
		{43, timeline.ModeOutro},
	}
	for _, tt := range tests {
		got, ok := timeline.PlaybackMode(tl, tt.t)
		if !ok || got != tt.want {
			t.Errorf("PlaybackMode(%v) = %v (ok=%v), want %v", tt.t, got, ok, tt.want)
		}
	}

	if _, ok := timeline.PlaybackMode(tl, 1000); ok {
		t.Error("out-of-range time should not classify")
	}
}

func TestPlaybackModeDefaultsToVideo(t *testing.T) {
	tl := &model.Timeline{
		Clips: []model.Clip{
			{Name: "intro", Start: 0, End: 2},
			{Name: "video", Start: 2, End: 8},
			{Name: "summary", Start: 8, End: 10},
		},
	}
	got, ok := timeline.PlaybackMode(tl, 9)
	if !ok || got != timeline.ModeVideo {
		t.Errorf("unknown clip name should default to video mode, got %v", got)
	}
}

func TestIsMediaVisible(t *testing.T) {
	tl := testTimeline()
	if timeline.IsMediaVisible(tl, 1) {
		t.Error("intro has no video media")
	}
	if !timeline.IsMediaVisible(tl, 10) {
		t.Error("video clip media should be visible")
	}
}

func TestValidate(t *testing.T) {
	if err := timeline.Validate(testTimeline()); err != nil {
		t.Fatalf("valid timeline rejected: %v", err)
	}

	gap := testTimeline()
	gap.Clips[1].Start = 3.5
	if err := timeline.Validate(gap); err == nil {
		t.Error("gap between clips should be rejected")
	}

	noVideo := testTimeline()
	noVideo.Clips[1].Name = "main"
	if err := timeline.Validate(noVideo); err == nil {
		t.Error("timeline without a video clip should be rejected")
	}

	late := testTimeline()
	late.Clips[0].Start = 1
	if err := timeline.Validate(late); err == nil {
		t.Error("intro not starting at 0 should be rejected")
	}
}
