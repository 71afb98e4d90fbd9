// Package playback reconciles the two time sources of a session, the
// media element's native clock (authoritative during the video clip) and a
// manual fixed-step clock (authoritative during intro and outro), into one
// externally observed timeline time, while keeping the narration audio
// element phase-locked to the governing clip.
package playback

// MediaElement abstracts the host's media surface (an HTML video or audio
// element, or a fake in tests). Play may fail asynchronously in the host
// (autoplay policy); implementations surface that as the returned error.
type MediaElement interface {
	Play() error
	Pause()

	// Seek moves the native position, in element-local seconds.
	Seek(seconds float64)

	CurrentTime() float64
	Duration() float64

	// SetSource swaps the element's source URL. After a swap the element
	// is not Loaded until the host reports the new source ready.
	SetSource(url string)
	Source() string

	// Loaded reports whether the current source has enough data to seek.
	Loaded() bool
}
