package session

import (
	"strings"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// FlattenEffects returns the session's display effects on the global
// timeline clock. Two wire forms exist: the legacy flat `displayEffects`
// list already carries timeline times, while the grouped `displayElements`
// form carries clip-relative times under each owning clip and wins when
// both are present.
func FlattenEffects(r *model.SessionResults) []model.DisplayEffect {
	if r == nil {
		return nil
	}
	if len(r.DisplayElements) == 0 {
		return r.DisplayEffects
	}

	var out []model.DisplayEffect
	for _, group := range r.DisplayElements {
		offset := 0.0
		if r.Timeline != nil {
			if clip := r.Timeline.ClipByName(group.ClipName); clip != nil {
				offset = clip.Start
			}
		}
		for _, e := range group.Effects {
			e.Start += offset
			e.End += offset
			out = append(out, e)
		}
	}
	return out
}

// normalize rewrites a freshly decoded document into the canonical shape
// the engine operates on: effects flattened to timeline time and media
// references resolved against the collaborator base URL.
func normalize(r *model.SessionResults, baseURL string) *model.SessionResults {
	if r == nil {
		return nil
	}
	r.DisplayEffects = FlattenEffects(r)

	if r.Timeline != nil {
		for ci := range r.Timeline.Clips {
			media := r.Timeline.Clips[ci].Media
			for mi := range media {
				media[mi].URL = absolutize(baseURL, media[mi].URL)
			}
		}
	}
	for i := range r.Narrations {
		r.Narrations[i].RawAudioURL = absolutize(baseURL, r.Narrations[i].RawAudioURL)
		r.Narrations[i].GeneratedAudioURL = absolutize(baseURL, r.Narrations[i].GeneratedAudioURL)
	}
	return r
}

// absolutize prefixes relative media paths with the base URL. Already
// absolute references (any scheme, including data and blob) pass through
// untouched.
func absolutize(base, url string) string {
	if url == "" || base == "" {
		return url
	}
	if strings.Contains(url, "://") || strings.HasPrefix(url, "data:") || strings.HasPrefix(url, "blob:") {
		return url
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(url, "/")
}
