package session

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// WaitForResults polls the collaborator until the session's results are
// ready, backing off exponentially between attempts. Only the not-ready
// signal is retried; any other failure aborts immediately. Cancelling ctx
// stops the wait.
func WaitForResults(ctx context.Context, client interfaces.ResultsClient, sessionID string, cfg Config, logger logging.Logger) (*model.SessionResults, error) {
	if logger == nil {
		logger = logging.NewStdoutLogger("SessionPoll")
	}

	bo := backoff.NewExponentialBackOff()
	if cfg.PollInitialInterval > 0 {
		bo.InitialInterval = cfg.PollInitialInterval
	}
	if cfg.PollMaxInterval > 0 {
		bo.MaxInterval = cfg.PollMaxInterval
	}
	bo.MaxElapsedTime = cfg.PollMaxElapsed

	attempt := 0
	var results *model.SessionResults
	operation := func() error {
		attempt++
		r, err := client.Fetch(ctx, sessionID)
		if err != nil {
			if errors.Is(err, interfaces.ErrResultsNotReady) {
				logger.Debug("session still processing",
					logging.Field{Key: "session", Value: sessionID},
					logging.Field{Key: "attempt", Value: attempt})
				return err
			}
			return backoff.Permanent(err)
		}
		results = r
		return nil
	}

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return results, nil
}
