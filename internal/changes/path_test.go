package changes

import (
	"reflect"
	"testing"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

func baseResults() *model.SessionResults {
	return &model.SessionResults{
		SessionID: "sess-1",
		Timeline: &model.Timeline{
			VideoDuration: 45,
			Clips: []model.Clip{
				{Name: "intro", Start: 0, End: 3, BackgroundColor: "#1a1625"},
				{Name: "video", Start: 3, End: 42.255, Media: []model.MediaItem{{Type: "video", URL: "v.mp4"}}},
				{Name: "outro", Start: 42.255, End: 45.255},
			},
		},
		Narrations: []model.Narration{{ClipName: "video", Text: "hello"}},
	}
}

func TestParsePath(t *testing.T) {
	segs, err := parsePath("timeline.clips[intro].backgroundColor")
	if err != nil {
		t.Fatal(err)
	}
	want := []pathSegment{
		{field: "timeline"},
		{field: "clips", key: "intro"},
		{field: "backgroundColor"},
	}
	if !reflect.DeepEqual(segs, want) {
		t.Errorf("parsePath = %+v, want %+v", segs, want)
	}

	for _, bad := range []string{"", "a..b", "clips[]", "[intro]", "clips[intro"} {
		if _, err := parsePath(bad); err == nil {
			t.Errorf("parsePath(%q) should fail", bad)
		}
	}
}

func TestApplyChangeBackgroundColor(t *testing.T) {
	logger := interfaces.NewTestLogger(false)
	base := baseResults()
	out := ApplyChange(base, model.Change{
		Type:     model.ChangeBackgroundColor,
		ClipName: "intro",
		Path:     "timeline.clips[intro].backgroundColor",
		OldValue: "#1a1625",
		NewValue: "#000000",
	}, logger)

	if out == base {
		t.Fatal("ApplyChange must return a clone, not the base")
	}
	if got := out.Timeline.ClipByName("intro").BackgroundColor; got != "#000000" {
		t.Errorf("intro backgroundColor = %q, want #000000", got)
	}
	if base.Timeline.ClipByName("intro").BackgroundColor != "#1a1625" {
		t.Error("base must stay untouched")
	}

	// Everything except the addressed field is identical.
	out.Timeline.Clips[0].BackgroundColor = "#1a1625"
	if !reflect.DeepEqual(out, base) {
		t.Error("change leaked outside the addressed path")
	}
}

func TestApplyChangeFailClosed(t *testing.T) {
	logger := interfaces.NewTestLogger(false)
	base := baseResults()

	tests := []string{
		"timeline.clips[missing].backgroundColor",
		"timeline.sections[intro].backgroundColor",
		"nowhere.at.all",
		"timeline.videoDuration.nested", // walking through a scalar
		"clips[",
	}
	for _, path := range tests {
		out := ApplyChange(base, model.Change{Path: path, NewValue: "x"}, logger)
		if out != base {
			t.Errorf("path %q: expected the original base back", path)
		}
		if !reflect.DeepEqual(out, baseResults()) {
			t.Errorf("path %q: base mutated", path)
		}
	}
}

func TestApplyChangeDeterminism(t *testing.T) {
	logger := interfaces.NewTestLogger(false)
	c := model.Change{Path: "timeline.clips[intro].backgroundColor", NewValue: "#ffffff"}

	once := ApplyChange(baseResults(), c, logger)
	twice := ApplyChange(once, c, logger)
	if !reflect.DeepEqual(once, twice) {
		t.Error("applying the same change twice must equal applying it once")
	}
}

func TestApplyChangeNamedMediaElement(t *testing.T) {
	logger := interfaces.NewTestLogger(false)
	base := baseResults()
	out := ApplyChange(base, model.Change{
		Type:     model.ChangeNarration,
		Path:     "narrations[video].text",
		NewValue: "rewritten",
	}, logger)
	// Narrations are keyed by clipName, not name, so this path fails closed.
	if out != base {
		t.Error("narrations are not name-addressable, expected fail-closed")
	}
}

func TestReplayIdempotence(t *testing.T) {
	logger := interfaces.NewTestLogger(false)
	stack := []model.Change{
		{Path: "timeline.clips[intro].backgroundColor", NewValue: "#101010"},
		{Path: "aspectRatio", NewValue: "16:9"},
		{Path: "timeline.clips[intro].backgroundColor", NewValue: "#202020"},
	}

	first := Replay(baseResults(), stack, logger)
	second := Replay(first, stack, logger)
	if !reflect.DeepEqual(first, second) {
		t.Error("replaying a stack onto its own result must be a no-op")
	}
	if got := first.Timeline.ClipByName("intro").BackgroundColor; got != "#202020" {
		t.Errorf("last write should win, got %q", got)
	}
	if first.AspectRatio != "16:9" {
		t.Errorf("aspectRatio = %q, want 16:9", first.AspectRatio)
	}
}
