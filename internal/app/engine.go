package app

import (
	"context"
	"time"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/changes"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/effects"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/playback"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/timeline"
)

// Engine bundles everything a loaded session needs at runtime: the change
// tracker holding its working state, the effect resolver and a synchronizer
// driving headless media elements.
type Engine struct {
	SessionID string
	Tracker   *changes.Tracker
	Resolver  *effects.Resolver
	Sync      *playback.Synchronizer

	video  *playback.VirtualElement
	audio  *playback.VirtualElement
	cancel context.CancelFunc
	logger logging.Logger
}

func newEngine(sessionID string, tracker *changes.Tracker, playbackCfg playback.Config, logger logging.Logger) (*Engine, error) {
	results := tracker.Results()

	resolver := effects.NewResolver(results.DisplayEffects,
		results.RecordingWidth, results.RecordingHeight, logger)

	var videoDur float64
	if v := results.Timeline.VideoClip(); v != nil {
		videoDur = v.Duration()
	}
	video := playback.NewVirtualElement(videoDur)
	audio := playback.NewVirtualElement(0)

	sync, err := playback.NewSynchronizer(results, resolver, video, audio, logger, &playbackCfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		SessionID: sessionID,
		Tracker:   tracker,
		Resolver:  resolver,
		Sync:      sync,
		video:     video,
		audio:     audio,
		logger:    logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	sync.Start()
	go e.run(ctx, playbackCfg.DriftCheckInterval)
	return e, nil
}

// run bridges the virtual elements back into the synchronizer: the host
// events a browser would deliver (timeupdate, ended, loadeddata) are
// synthesized from the wall-clock elements.
func (e *Engine) run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := e.Sync.Snapshot()
			// Loadeddata is synthesized in every mode. A cross-clip seek
			// into intro or outro parks the narration position behind
			// this event.
			e.Sync.NotifyAudioLoaded()
			if snap.Mode != timeline.ModeVideo {
				continue
			}
			if e.video.Ended() {
				e.Sync.NotifyMediaEnded()
				continue
			}
			if snap.Playing {
				e.Sync.NotifyTimeUpdate(e.video.CurrentTime())
			}
		}
	}
}

// ApplyChange records a user edit and refreshes the resolver when the edit
// touched the effect set.
func (e *Engine) ApplyChange(ctx context.Context, c model.Change) model.Change {
	tracked := e.Tracker.TrackChange(ctx, c)
	if c.Type == model.ChangeEffect {
		if results := e.Tracker.Results(); results != nil {
			e.Resolver.SetEffects(results.DisplayEffects)
		}
	}
	return tracked
}

// CompactChanges returns the pending stack collapsed to one change per
// path, the shape a save would transmit.
func (e *Engine) CompactChanges() []model.Change {
	return changes.Compact(e.Tracker.PendingChanges())
}

// Frame returns the live playback frame.
func (e *Engine) Frame() playback.Frame {
	return e.Sync.Snapshot()
}

// FrameAt resolves the frame state at an arbitrary timeline time without
// touching playback position. Used for stateless previews and scrubbing.
func (e *Engine) FrameAt(t float64) playback.Frame {
	results := e.Tracker.Results()
	mode := timeline.ModeVideo
	visible := false
	if results != nil && results.Timeline != nil {
		if m, ok := timeline.PlaybackMode(results.Timeline, t); ok {
			mode = m
		}
		visible = timeline.IsMediaVisible(results.Timeline, t)
	}
	return playback.Frame{
		Time:         t,
		Mode:         mode,
		MediaVisible: visible,
		Transform:    e.Resolver.FrameTransform(t),
	}
}

// Close stops the bridge loop and the synchronizer.
func (e *Engine) Close() {
	if e.cancel != nil {
		e.cancel()
	}
	e.Sync.Close()
}
