// Package changes implements the optimistic change-tracking and merge
// engine: user edits are recorded as path-addressed deltas, backed up to a
// session-keyed durable store, and deterministically replayed onto freshly
// fetched authoritative data on session load.
package changes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// DefaultBackupMaxAge is how long a local backup stays eligible for merge.
const DefaultBackupMaxAge = 24 * time.Hour

var ErrNoResults = errors.New("changes: no working state loaded")

// Config controls runtime settings for the tracker.
type Config struct {
	// BackupMaxAge bounds the staleness window for merge-on-load;
	// zero means DefaultBackupMaxAge.
	BackupMaxAge time.Duration
}

// Tracker owns the working state of one session and the ordered stack of
// unsaved edits. All mutation of persisted fields goes through
// TrackChange; the stack is cleared only on confirmed save success.
type Tracker struct {
	mu        sync.Mutex
	sessionID string
	store     interfaces.SessionStore
	client    interfaces.ResultsClient
	logger    logging.Logger
	maxAge    time.Duration

	results *model.SessionResults
	stack   []model.Change
	merged  bool
}

// NewTracker wires a tracker for sessionID with the given backup store and
// persistence collaborator.
func NewTracker(sessionID string, store interfaces.SessionStore, client interfaces.ResultsClient, logger logging.Logger, cfg *Config) *Tracker {
	if cfg == nil {
		cfg = &Config{}
	}
	maxAge := cfg.BackupMaxAge
	if maxAge <= 0 {
		maxAge = DefaultBackupMaxAge
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("ChangeTracker")
	}
	return &Tracker{
		sessionID: sessionID,
		store:     store,
		client:    client,
		logger:    logger,
		maxAge:    maxAge,
	}
}

// Results returns the current working state (may be nil before load).
func (t *Tracker) Results() *model.SessionResults {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.results
}

// PendingChanges returns a copy of the unsaved change stack in call order.
func (t *Tracker) PendingChanges() []model.Change {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.Change, len(t.stack))
	copy(out, t.stack)
	return out
}

// HasUnsaved reports whether edits are awaiting persistence.
func (t *Tracker) HasUnsaved() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.stack) > 0
}

// LoadSession replaces the working state with freshly fetched authoritative
// data and, exactly once per session activation, replays a usable local
// backup's change stack onto it. Subsequent refetches (e.g. cache-busted
// reloads after a save) skip the merge.
func (t *Tracker) LoadSession(ctx context.Context, fresh *model.SessionResults) error {
	if fresh == nil {
		return ErrNoResults
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.results = fresh

	if t.merged || t.store == nil {
		return nil
	}
	t.merged = true

	backup, err := t.store.Get(ctx, t.sessionID)
	if err != nil {
		// Advisory storage: a broken backup read must not block loading.
		t.logger.Warn("reading local backup", logging.Field{Key: "error", Value: err.Error()})
		return nil
	}
	if backup == nil {
		return nil
	}
	if time.Since(backup.Timestamp) > t.maxAge {
		t.logger.Info("discarding stale local backup",
			logging.Field{Key: "session", Value: t.sessionID},
			logging.Field{Key: "age", Value: time.Since(backup.Timestamp).String()})
		if err := t.store.Remove(ctx, t.sessionID); err != nil {
			t.logger.Warn("removing stale backup", logging.Field{Key: "error", Value: err.Error()})
		}
		return nil
	}
	if len(backup.ChangeStack) == 0 {
		return nil
	}

	// Replay onto the fresh data, never onto the stale cached copy, and
	// keep the stack open as unsaved work.
	t.results = Replay(fresh, backup.ChangeStack, t.logger)
	t.stack = backup.ChangeStack
	t.logger.Info("merged local backup onto fresh session data",
		logging.Field{Key: "session", Value: t.sessionID},
		logging.Field{Key: "changes", Value: len(backup.ChangeStack)})
	return nil
}

// TrackChange stamps an id and timestamp onto the partial change, applies
// it to the working state, appends it to the stack and refreshes the local
// backup. Malformed changes are accepted and fail silently at apply time.
func (t *Tracker) TrackChange(ctx context.Context, c model.Change) model.Change {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.results != nil {
		t.results = ApplyChange(t.results, c, t.logger)
	}
	t.stack = append(t.stack, c)
	t.logger.Debug("tracked change",
		logging.Field{Key: "id", Value: c.ID},
		logging.Field{Key: "type", Value: string(c.Type)},
		logging.Field{Key: "path", Value: c.Path},
		logging.Field{Key: "diff", Value: textDelta(c.OldValue, c.NewValue)})
	t.writeBackupLocked(ctx)
	return c
}

// Save compacts the stack, transmits it with the current working state and
// clears both the stack and the local backup on success. On failure the
// stack stays intact so the save is retryable without loss.
func (t *Tracker) Save(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.results == nil {
		return ErrNoResults
	}
	if len(t.stack) == 0 {
		return nil
	}
	compacted := Compact(t.stack)
	if err := t.client.Save(ctx, t.sessionID, t.results, compacted); err != nil {
		return fmt.Errorf("saving session %s: %w", t.sessionID, err)
	}

	t.stack = nil
	if t.store != nil {
		if err := t.store.Remove(ctx, t.sessionID); err != nil {
			t.logger.Warn("clearing local backup after save", logging.Field{Key: "error", Value: err.Error()})
		}
	}
	t.logger.Info("saved session changes",
		logging.Field{Key: "session", Value: t.sessionID},
		logging.Field{Key: "changes", Value: len(compacted)})
	return nil
}

// Compact collapses the stack to one change per unique path: order of
// first occurrence, value of last occurrence. String-valued edits get a
// Delta spanning the first old value to the final new value, so the
// save payload records what the whole edit session changed.
func Compact(stack []model.Change) []model.Change {
	byPath := make(map[string]int, len(stack))
	firstOld := make(map[string]any, len(stack))
	out := make([]model.Change, 0, len(stack))
	for _, c := range stack {
		if idx, ok := byPath[c.Path]; ok {
			c.Delta = textDelta(firstOld[c.Path], c.NewValue)
			out[idx] = c
			continue
		}
		byPath[c.Path] = len(out)
		firstOld[c.Path] = c.OldValue
		c.Delta = textDelta(c.OldValue, c.NewValue)
		out = append(out, c)
	}
	return out
}

// writeBackupLocked serializes the current snapshot to the durable store.
// Backups are advisory; failures are logged and swallowed.
func (t *Tracker) writeBackupLocked(ctx context.Context) {
	if t.store == nil {
		return
	}
	b := &model.Backup{
		Results:     t.results,
		ChangeStack: t.stack,
		Timestamp:   time.Now().UTC(),
	}
	if err := t.store.Set(ctx, t.sessionID, b); err != nil {
		t.logger.Warn("writing local backup", logging.Field{Key: "error", Value: err.Error()})
	}
}

// textDelta renders a compact delta for string-valued edits so audit logs
// show what actually changed instead of two full values.
func textDelta(oldValue, newValue any) string {
	oldS, okOld := oldValue.(string)
	newS, okNew := newValue.(string)
	if !okOld || !okNew {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldS, newS, false)
	return dmp.DiffToDelta(diffs)
}
