package session

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/changes"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// Loader assembles a ready change tracker for a session: authoritative
// results are polled from the collaborator while the local backup is
// probed in parallel, then the backup's unsaved work is replayed onto the
// fresh data.
type Loader struct {
	cfg    Config
	client interfaces.ResultsClient
	store  interfaces.SessionStore
	logger logging.Logger

	// TrackerCfg overrides the tracker defaults (backup staleness window).
	TrackerCfg *changes.Config
}

// NewLoader wires a loader over the collaborator client and backup store.
func NewLoader(cfg Config, client interfaces.ResultsClient, store interfaces.SessionStore, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewStdoutLogger("SessionLoader")
	}
	return &Loader{cfg: cfg, client: client, store: store, logger: logger}
}

// Load waits for the session's results and returns a tracker with the
// working state loaded and any usable backup merged. The returned backup
// flag reports whether unsaved local work was found, so callers can
// surface it before the slow results poll finishes.
func (l *Loader) Load(ctx context.Context, sessionID string) (*changes.Tracker, bool, error) {
	var (
		fresh     *model.SessionResults
		hadBackup bool
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := WaitForResults(gctx, l.client, sessionID, l.cfg, l.logger)
		if err != nil {
			return err
		}
		fresh = r
		return nil
	})
	g.Go(func() error {
		if l.store == nil {
			return nil
		}
		backup, err := l.store.Get(gctx, sessionID)
		if err != nil {
			// The backup probe is informational; the tracker re-reads the
			// store itself and tolerates failures there.
			l.logger.Warn("probing local backup",
				logging.Field{Key: "session", Value: sessionID},
				logging.Field{Key: "error", Value: err.Error()})
			return nil
		}
		hadBackup = backup != nil && len(backup.ChangeStack) > 0
		if hadBackup {
			l.logger.Info("unsaved local work found",
				logging.Field{Key: "session", Value: sessionID},
				logging.Field{Key: "changes", Value: len(backup.ChangeStack)})
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	tracker := changes.NewTracker(sessionID, l.store, l.client, l.logger, l.TrackerCfg)
	if err := tracker.LoadSession(ctx, fresh); err != nil {
		return nil, hadBackup, err
	}
	return tracker, hadBackup, nil
}
