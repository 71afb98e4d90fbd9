package playback

import (
	"sync"
	"time"
)

// VirtualElement is a headless MediaElement driven by the wall clock. It
// stands in for a host media surface when the engine runs server-side:
// sources "load" instantly and playback position advances in real time
// while playing.
type VirtualElement struct {
	mu       sync.Mutex
	source   string
	loaded   bool
	playing  bool
	pos      float64
	lastAt   time.Time
	duration float64
}

// NewVirtualElement returns a stopped element with the given media
// duration. A zero duration means unbounded (narration audio).
func NewVirtualElement(duration float64) *VirtualElement {
	return &VirtualElement{duration: duration, loaded: true}
}

var _ MediaElement = (*VirtualElement)(nil)

func (v *VirtualElement) Play() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.playing {
		return nil
	}
	now := time.Now()
	v.pos = v.posLocked(now)
	v.lastAt = now
	v.playing = true
	return nil
}

func (v *VirtualElement) Pause() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pos = v.posLocked(time.Now())
	v.playing = false
}

func (v *VirtualElement) Seek(seconds float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	if v.duration > 0 && seconds > v.duration {
		seconds = v.duration
	}
	v.pos = seconds
	v.lastAt = time.Now()
}

func (v *VirtualElement) CurrentTime() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.posLocked(time.Now())
}

func (v *VirtualElement) Duration() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.duration
}

func (v *VirtualElement) SetSource(url string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.source = url
	v.pos = 0
	v.lastAt = time.Now()
	// Headless sources need no network round trip.
	v.loaded = true
}

func (v *VirtualElement) Source() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.source
}

func (v *VirtualElement) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Ended reports whether a bounded element has played through its duration.
func (v *VirtualElement) Ended() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.duration > 0 && v.posLocked(time.Now()) >= v.duration
}

func (v *VirtualElement) posLocked(now time.Time) float64 {
	p := v.pos
	if v.playing {
		p += now.Sub(v.lastAt).Seconds()
	}
	if v.duration > 0 && p > v.duration {
		p = v.duration
	}
	return p
}
