package interfaces

import (
	"context"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// SessionStore is the durable local backup port for unsaved edits.
// Implementations persist one Backup blob per session id and should be
// safe for concurrent use.
type SessionStore interface {
	// Get returns the backup for sessionID, or (nil, nil) when none exists.
	Get(ctx context.Context, sessionID string) (*model.Backup, error)

	// Set stores (or replaces) the backup for sessionID.
	Set(ctx context.Context, sessionID string, backup *model.Backup) error

	// Remove deletes the backup for sessionID. Removing a missing backup is a no-op.
	Remove(ctx context.Context, sessionID string) error

	// Close releases resources used by the store.
	Close() error
}
