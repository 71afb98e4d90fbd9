package interfaces

import (
	"context"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// ResultsClient is the contract to the authoritative session-data
// collaborator. Fetch returns processed results for a session; Save
// persists the current working state together with the compacted change
// list. A failed Save must leave the caller free to retry with the same
// payload.
type ResultsClient interface {
	// Fetch retrieves the authoritative results document for sessionID.
	// Returns ErrResultsNotReady (possibly wrapped) while the backend is
	// still processing the session.
	Fetch(ctx context.Context, sessionID string) (*model.SessionResults, error)

	// Save persists the working state and the compacted change list.
	Save(ctx context.Context, sessionID string, results *model.SessionResults, changes []model.Change) error
}
