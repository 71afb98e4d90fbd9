package model

import "time"

// BoundingBox represents element position and dimensions in recording pixels.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenterX returns the horizontal center of the box.
func (b BoundingBox) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b BoundingBox) CenterY() float64 { return b.Y + b.Height/2 }

// MediaItem is a single media asset owned by a clip. The first video-typed
// item of a clip is authoritative for border rendering.
type MediaItem struct {
	Type         string   `json:"type"` // "video" | "image" | "audio"
	Format       string   `json:"format,omitempty"`
	URL          string   `json:"url"`
	BorderRadius *float64 `json:"borderRadius,omitempty"` // percent, 0-20
}

// Clip is one of the three ordered, contiguous intervals on the unified
// timeline: intro, video, outro. End is exclusive for containment tests
// except on the final clip.
type Clip struct {
	Name            string      `json:"name"`
	Start           float64     `json:"start"`
	End             float64     `json:"end"`
	BackgroundColor string      `json:"backgroundColor,omitempty"`
	Media           []MediaItem `json:"media,omitempty"`
}

// Timeline is the unified intro+video+outro time axis.
type Timeline struct {
	VideoDuration float64 `json:"videoDuration"`
	Clips         []Clip  `json:"clips"`
}

// EffectTarget specifies what the effect applies to.
type EffectTarget struct {
	Selector string       `json:"selector,omitempty"`
	Bounds   *BoundingBox `json:"bounds,omitempty"`
}

// ZoomStyle carries the optional explicit scale override for a zoom effect.
type ZoomStyle struct {
	Scale *float64 `json:"scale,omitempty"`
}

// EffectStyle holds per-type style blocks for a display effect.
type EffectStyle struct {
	Zoom *ZoomStyle `json:"zoom,omitempty"`
}

// DisplayEffect represents a time-boxed visual effect applied during
// playback. Only "zoom" is interpreted; other types pass through inert.
type DisplayEffect struct {
	Start  float64       `json:"start"`
	End    float64       `json:"end"`
	Type   string        `json:"type"` // "zoom" | "highlight" | "focus" | "dim" | "blur" | "label"
	Target *EffectTarget `json:"target,omitempty"`
	Style  *EffectStyle  `json:"style,omitempty"`
}

// DisplayElement is a text overlay rendered alongside effects. Elements are
// carried through the data model but not interpreted by the rendering core.
type DisplayElement struct {
	Start float64                `json:"start"`
	End   float64                `json:"end"`
	Type  string                 `json:"type"`
	Text  string                 `json:"text,omitempty"`
	Style map[string]interface{} `json:"style,omitempty"`
}

// EffectGroup groups effects and elements under their owning clip.
type EffectGroup struct {
	ClipName string           `json:"clipName"`
	Effects  []DisplayEffect  `json:"effects,omitempty"`
	Elements []DisplayElement `json:"elements,omitempty"`
}

// Narration holds the per-clip narration audio references.
type Narration struct {
	ClipName          string `json:"clipName"`
	Text              string `json:"text,omitempty"`
	RawAudioURL       string `json:"rawAudioUrl,omitempty"`
	GeneratedAudioURL string `json:"generatedAudioUrl,omitempty"`
}

// SessionResults is the authoritative session document the editor operates
// on. It is replaced wholesale on session load and mutated only through
// change application.
type SessionResults struct {
	SessionID       string           `json:"sessionId,omitempty"`
	Timeline        *Timeline        `json:"timeline"`
	Narrations      []Narration      `json:"narrations,omitempty"`
	RecordingWidth  float64          `json:"recordingWidth,omitempty"`
	RecordingHeight float64          `json:"recordingHeight,omitempty"`
	AspectRatio     string           `json:"aspectRatio,omitempty"`
	DisplayEffects  []DisplayEffect  `json:"displayEffects,omitempty"`  // legacy flat form
	DisplayElements []EffectGroup    `json:"displayElements,omitempty"` // segment-grouped form
}

// ChangeType enumerates the closed set of editable properties.
type ChangeType string

const (
	ChangeBackgroundColor ChangeType = "backgroundColor"
	ChangeBorderRadius    ChangeType = "borderRadius"
	ChangeEffect          ChangeType = "effect"
	ChangeText            ChangeType = "text"
	ChangeNarration       ChangeType = "narration"
	ChangeAspectRatio     ChangeType = "aspectRatio"
	ChangeClip            ChangeType = "clip"
)

// Change is a single path-addressed user edit awaiting persistence.
// Path bracket segments address array elements by the element's name,
// e.g. "timeline.clips[intro].backgroundColor".
type Change struct {
	ID        string      `json:"id"`
	Timestamp time.Time   `json:"timestamp"`
	Type      ChangeType  `json:"type"`
	ClipName  string      `json:"clipName,omitempty"`
	Path      string      `json:"path"`
	OldValue  interface{} `json:"oldValue"`
	NewValue  interface{} `json:"newValue"`

	// Delta is a compact text diff of string-valued edits, stamped on
	// compaction as an audit artifact. Never parsed back.
	Delta string `json:"delta,omitempty"`
}

// Backup is the durable local snapshot of unsaved work, keyed by session.
type Backup struct {
	Results     *SessionResults `json:"results"`
	ChangeStack []Change        `json:"changeStack"`
	Timestamp   time.Time       `json:"timestamp"`
}

// ProgressSignal is the processing status read from the notification
// collaborator. Absence of a signal is treated as "still preparing".
type ProgressSignal struct {
	Progress  float64 `json:"progress"`
	Completed bool    `json:"completed"`
	Error     string  `json:"error,omitempty"`
}
