package model

// ClipByName returns the clip with the given name, or nil.
func (t *Timeline) ClipByName(name string) *Clip {
	if t == nil {
		return nil
	}
	for i := range t.Clips {
		if t.Clips[i].Name == name {
			return &t.Clips[i]
		}
	}
	return nil
}

// VideoClip returns the single media-backed clip (name "video"), or nil.
func (t *Timeline) VideoClip() *Clip {
	return t.ClipByName("video")
}

// Duration returns the clip length in seconds.
func (c *Clip) Duration() float64 {
	return c.End - c.Start
}

// FirstVideoMedia returns the first video-typed media item of the clip,
// which is authoritative for border rendering.
func (c *Clip) FirstVideoMedia() *MediaItem {
	for i := range c.Media {
		if c.Media[i].Type == "video" {
			return &c.Media[i]
		}
	}
	return nil
}

// HasVideoMedia reports whether the clip carries a video-typed media item.
func (c *Clip) HasVideoMedia() bool {
	return c.FirstVideoMedia() != nil
}

// NarrationByClip returns the narration for a clip name, or nil.
func (r *SessionResults) NarrationByClip(name string) *Narration {
	if r == nil {
		return nil
	}
	for i := range r.Narrations {
		if r.Narrations[i].ClipName == name {
			return &r.Narrations[i]
		}
	}
	return nil
}
