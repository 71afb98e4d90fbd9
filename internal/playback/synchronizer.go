package playback

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/effects"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/timeline"
)

type cmdKind int

const (
	cmdPlay cmdKind = iota
	cmdPause
	cmdSeek
	cmdTick
	cmdTimeUpdate
	cmdAudioLoaded
	cmdMediaEnded
)

// command is the single message type feeding the reducer. Routing every
// time-source through one stream removes the races that scattered
// "isSeeking" flags would otherwise paper over.
type command struct {
	kind    cmdKind
	seconds float64
}

// Frame is the externally observed playback state after a reducer step.
type Frame struct {
	Time         float64           `json:"time"`
	Mode         timeline.Mode     `json:"mode"`
	Playing      bool              `json:"playing"`
	Ended        bool              `json:"ended"`
	MediaVisible bool              `json:"mediaVisible"`
	Transform    effects.Transform `json:"transform"`
}

// Synchronizer drives playback of one session. All state transitions run
// on a single reducer goroutine; public methods only enqueue commands, so
// there is exactly one writer and no lock contention on the hot path.
type Synchronizer struct {
	cfg      Config
	tl       *model.Timeline
	results  *model.SessionResults
	resolver *effects.Resolver
	video    MediaElement
	audio    MediaElement
	logger   logging.Logger

	commands chan command
	done     chan struct{}
	once     sync.Once

	// Reducer-owned; never touched outside apply().
	current          float64
	playing          bool
	ended            bool
	mode             timeline.Mode
	activeClip       string
	pendingAudioSeek *float64
	suppressUntil    time.Time
	lastDriftCheck   time.Time

	mu      sync.RWMutex
	frame   Frame
	onFrame func(Frame)
}

// NewSynchronizer wires a synchronizer over the session's timeline. audio
// may be nil for sessions without narration; video must not be.
func NewSynchronizer(results *model.SessionResults, resolver *effects.Resolver, video, audio MediaElement, logger logging.Logger, cfg *Config) (*Synchronizer, error) {
	if results == nil || results.Timeline == nil {
		return nil, errors.New("playback: nil session results")
	}
	if video == nil {
		return nil, errors.New("playback: nil video element")
	}
	if err := timeline.Validate(results.Timeline); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("Synchronizer")
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}

	s := &Synchronizer{
		cfg:      c,
		tl:       results.Timeline,
		results:  results,
		resolver: resolver,
		video:    video,
		audio:    audio,
		logger:   logger,
		commands: make(chan command, 16),
		done:     make(chan struct{}),
	}

	if clip := timeline.ActiveClip(s.tl, 0); clip != nil {
		s.activeClip = clip.Name
		s.mode, _ = timeline.PlaybackMode(s.tl, 0)
	}
	s.publish()
	return s, nil
}

// OnFrame registers the render callback. Must be set before Start; it is
// invoked from the reducer goroutine once per applied command.
func (s *Synchronizer) OnFrame(fn func(Frame)) {
	s.onFrame = fn
}

// Start launches the reducer loop and the manual fixed-step clock.
func (s *Synchronizer) Start() {
	go s.loop()
}

// Close stops the reducer loop. Safe to call more than once.
func (s *Synchronizer) Close() {
	s.once.Do(func() { close(s.done) })
}

// Play requests playback from the current position.
func (s *Synchronizer) Play() { s.send(command{kind: cmdPlay}) }

// Pause halts playback, leaving the position untouched.
func (s *Synchronizer) Pause() { s.send(command{kind: cmdPause}) }

// SeekTo jumps to a timeline time, optimistically publishing the new
// position before the media elements settle.
func (s *Synchronizer) SeekTo(t float64) { s.send(command{kind: cmdSeek, seconds: t}) }

// NotifyTimeUpdate feeds a native timeupdate event from the video element.
func (s *Synchronizer) NotifyTimeUpdate(mediaTime float64) {
	s.send(command{kind: cmdTimeUpdate, seconds: mediaTime})
}

// NotifyAudioLoaded feeds the audio element's loadeddata event.
func (s *Synchronizer) NotifyAudioLoaded() { s.send(command{kind: cmdAudioLoaded}) }

// NotifyMediaEnded feeds the video element's natural end-of-media event.
func (s *Synchronizer) NotifyMediaEnded() { s.send(command{kind: cmdMediaEnded}) }

// Snapshot returns the most recently published frame.
func (s *Synchronizer) Snapshot() Frame {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frame
}

func (s *Synchronizer) send(cmd command) {
	select {
	case s.commands <- cmd:
	case <-s.done:
	}
}

func (s *Synchronizer) loop() {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case cmd := <-s.commands:
			s.apply(cmd, time.Now())
		case now := <-ticker.C:
			s.apply(command{kind: cmdTick, seconds: s.cfg.TickInterval.Seconds()}, now)
		}
	}
}

// apply is the reducer: one command in, one frame out.
func (s *Synchronizer) apply(cmd command, now time.Time) {
	switch cmd.kind {
	case cmdPlay:
		s.applyPlay(now)
	case cmdPause:
		s.applyPause()
	case cmdSeek:
		s.applySeek(cmd.seconds, now)
	case cmdTick:
		s.applyTick(cmd.seconds, now)
	case cmdTimeUpdate:
		s.applyTimeUpdate(cmd.seconds, now)
	case cmdAudioLoaded:
		s.applyAudioLoaded()
	case cmdMediaEnded:
		s.applyMediaEnded(now)
	}
	s.publish()
}

func (s *Synchronizer) applyPlay(now time.Time) {
	if s.ended {
		// Restarting from the terminal state rewinds to the top.
		s.applySeek(0, now)
	}
	s.playing = true

	if s.mode == timeline.ModeVideo {
		s.video.Seek(timeline.TimelineToMediaTime(s.tl, s.current))
		if err := s.video.Play(); err != nil {
			s.logger.Warn("media play rejected",
				logging.Field{Key: "error", Value: err.Error()})
			s.playing = false
			return
		}
	} else {
		// Manual clock territory: the media element stays parked.
		s.video.Pause()
	}
	s.playAudio()
}

func (s *Synchronizer) applyPause() {
	s.playing = false
	s.video.Pause()
	if s.audio != nil {
		s.audio.Pause()
	}
}

// applyTick advances the manual clock. Ticks are ignored in video mode,
// where the media element's own time-advance events are authoritative.
func (s *Synchronizer) applyTick(dt float64, now time.Time) {
	if !s.playing || s.mode == timeline.ModeVideo {
		return
	}
	s.current += dt

	if total := timeline.TotalDuration(s.tl); s.current >= total {
		s.current = total
		s.finish()
		return
	}
	s.updateMode(now)
	s.correctDrift(now, s.cfg.DriftToleranceManual)
}

func (s *Synchronizer) applyTimeUpdate(mediaTime float64, now time.Time) {
	if s.mode != timeline.ModeVideo {
		return
	}
	if now.Before(s.suppressUntil) {
		// A manual seek is still settling; stale native events lose.
		return
	}
	s.current = timeline.MediaTimeToTimelineTime(s.tl, mediaTime)

	if v := s.tl.VideoClip(); v != nil && mediaTime >= v.Duration() {
		s.applyMediaEnded(now)
		return
	}
	s.correctDrift(now, s.cfg.DriftToleranceVideo)
}

// applyMediaEnded handles the video clip running out, naturally or via a
// timeupdate that overshoots: the manual clock resumes for the outro.
func (s *Synchronizer) applyMediaEnded(now time.Time) {
	if v := s.tl.VideoClip(); v != nil {
		s.current = v.End
	}
	s.video.Pause()
	if s.current >= timeline.TotalDuration(s.tl) {
		s.finish()
		return
	}
	s.updateMode(now)
}

func (s *Synchronizer) applySeek(target float64, now time.Time) {
	total := timeline.TotalDuration(s.tl)
	if target < 0 {
		target = 0
	}
	if target > total {
		target = total
	}

	// Publish optimistically; the elements settle afterwards.
	s.current = target
	s.ended = false
	wasPlaying := s.playing

	mode, ok := timeline.PlaybackMode(s.tl, target)
	if !ok {
		s.finish()
		return
	}
	clip := timeline.ActiveClip(s.tl, target)
	prevClip := s.activeClip
	s.mode = mode
	s.activeClip = clip.Name
	s.suppressUntil = now.Add(s.cfg.SeekSuppression)

	if clip.Name != prevClip {
		s.switchAudioSource(clip)
	} else if s.audio != nil {
		rel := target - clip.Start
		if s.audio.Loaded() {
			s.audio.Seek(rel)
		} else {
			s.pendingAudioSeek = &rel
		}
	}

	if mode == timeline.ModeVideo {
		s.video.Seek(timeline.TimelineToMediaTime(s.tl, target))
		if wasPlaying {
			if err := s.video.Play(); err != nil {
				s.logger.Warn("media play rejected after seek",
					logging.Field{Key: "error", Value: err.Error()})
				s.playing = false
			}
		}
	} else {
		s.video.Pause()
	}
	if wasPlaying {
		s.playAudio()
	}
}

func (s *Synchronizer) applyAudioLoaded() {
	if s.audio == nil {
		return
	}
	if s.pendingAudioSeek != nil {
		s.audio.Seek(*s.pendingAudioSeek)
		s.pendingAudioSeek = nil
	}
	if s.playing {
		s.playAudio()
	}
}

// updateMode re-classifies the current time and performs the segment
// transition when the active clip changed.
func (s *Synchronizer) updateMode(now time.Time) {
	clip := timeline.ActiveClip(s.tl, s.current)
	if clip == nil || clip.Name == s.activeClip {
		return
	}
	mode, _ := timeline.PlaybackMode(s.tl, s.current)
	prevMode := s.mode
	s.mode = mode
	s.activeClip = clip.Name
	s.logger.Debug("clip transition",
		logging.Field{Key: "clip", Value: clip.Name},
		logging.Field{Key: "mode", Value: string(mode)},
		logging.Field{Key: "t", Value: s.current})

	s.switchAudioSource(clip)

	switch {
	case mode == timeline.ModeVideo && prevMode != timeline.ModeVideo:
		// intro -> video: the media element takes over from zero.
		s.video.Seek(0)
		if s.playing {
			if err := s.video.Play(); err != nil {
				s.logger.Warn("media play rejected at clip transition",
					logging.Field{Key: "error", Value: err.Error()})
				s.playing = false
			}
		}
	case mode != timeline.ModeVideo && prevMode == timeline.ModeVideo:
		// video -> outro: back under the manual clock.
		s.video.Pause()
	}
	if s.playing {
		s.playAudio()
	}
}

// switchAudioSource points the audio element at the clip's narration. The
// desired position stays pending until the element reports the new source
// loaded, so we never seek into an unloaded source.
func (s *Synchronizer) switchAudioSource(clip *model.Clip) {
	if s.audio == nil {
		return
	}
	url := s.narrationURL(clip.Name)
	if url == "" {
		s.audio.Pause()
		return
	}
	rel := s.current - clip.Start
	if s.audio.Source() != url {
		s.audio.SetSource(url)
		s.pendingAudioSeek = &rel
		return
	}
	if s.audio.Loaded() {
		s.audio.Seek(rel)
	} else {
		s.pendingAudioSeek = &rel
	}
}

// correctDrift compares the audio position to the clip-relative expected
// position and hard-seeks past the tolerance. No gradual correction:
// simplicity over smoothness.
func (s *Synchronizer) correctDrift(now time.Time, tolerance float64) {
	if s.audio == nil || !s.playing {
		return
	}
	if now.Before(s.suppressUntil) {
		return
	}
	if now.Sub(s.lastDriftCheck) < s.cfg.DriftCheckInterval {
		return
	}
	s.lastDriftCheck = now

	if s.pendingAudioSeek != nil || !s.audio.Loaded() {
		return
	}
	clip := timeline.ActiveClip(s.tl, s.current)
	if clip == nil {
		return
	}
	expected := s.current - clip.Start
	drift := math.Abs(s.audio.CurrentTime() - expected)
	if drift > tolerance {
		s.logger.Debug("audio drift beyond tolerance, hard-seeking",
			logging.Field{Key: "drift", Value: drift},
			logging.Field{Key: "expected", Value: expected})
		s.audio.Seek(expected)
	}
}

func (s *Synchronizer) playAudio() {
	if s.audio == nil {
		return
	}
	if err := s.audio.Play(); err != nil {
		// Audio rejection degrades to silent playback; visuals continue.
		s.logger.Warn("audio play rejected", logging.Field{Key: "error", Value: err.Error()})
	}
}

func (s *Synchronizer) finish() {
	s.playing = false
	s.ended = true
	s.video.Pause()
	if s.audio != nil {
		s.audio.Pause()
	}
}

func (s *Synchronizer) narrationURL(clipName string) string {
	n := s.results.NarrationByClip(clipName)
	if n == nil {
		return ""
	}
	if n.GeneratedAudioURL != "" {
		return n.GeneratedAudioURL
	}
	return n.RawAudioURL
}

func (s *Synchronizer) publish() {
	tr := effects.Neutral()
	if s.resolver != nil {
		tr = s.resolver.FrameTransform(s.current)
	}
	f := Frame{
		Time:         s.current,
		Mode:         s.mode,
		Playing:      s.playing,
		Ended:        s.ended,
		MediaVisible: timeline.IsMediaVisible(s.tl, s.current),
		Transform:    tr,
	}
	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
	if s.onFrame != nil {
		s.onFrame(f)
	}
}
