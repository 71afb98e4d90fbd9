package server

import (
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/playback"
)

// TrackChangeRequest records one user edit against the session's working
// state.
type TrackChangeRequest struct {
	Type     string      `json:"type" example:"backgroundColor"`
	ClipName string      `json:"clipName" example:"intro"`
	Path     string      `json:"path" example:"timeline.clips[intro].backgroundColor"`
	OldValue interface{} `json:"oldValue"`
	NewValue interface{} `json:"newValue"`
}

// TransportRequest drives playback of an open session.
type TransportRequest struct {
	Action string   `json:"action" example:"seek"`
	Time   *float64 `json:"time,omitempty" example:"12.5"`
}

// SessionStateResponse is the working state of an open session.
type SessionStateResponse struct {
	SessionID      string                `json:"sessionId" example:"sess-1"`
	Results        *model.SessionResults `json:"results"`
	PendingChanges int                   `json:"pendingChanges" example:"3"`
	Frame          playback.Frame        `json:"frame"`
}

// ChangesResponse lists a session's unsaved changes.
type ChangesResponse struct {
	SessionID string         `json:"sessionId" example:"sess-1"`
	Changes   []model.Change `json:"changes"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"session not open"`
}
