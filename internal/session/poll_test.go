package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// stubClient scripts Fetch responses per attempt.
type stubClient struct {
	attempts int
	script   func(attempt int) (*model.SessionResults, error)
	saved    [][]model.Change
	saveErr  error
}

func (s *stubClient) Fetch(ctx context.Context, sessionID string) (*model.SessionResults, error) {
	s.attempts++
	return s.script(s.attempts)
}

func (s *stubClient) Save(ctx context.Context, sessionID string, results *model.SessionResults, changes []model.Change) error {
	s.saved = append(s.saved, changes)
	return s.saveErr
}

func pollConfig() Config {
	return Config{
		PollInitialInterval: time.Millisecond,
		PollMaxInterval:     2 * time.Millisecond,
		PollMaxElapsed:      time.Second,
	}
}

func TestWaitForResultsRetriesNotReady(t *testing.T) {
	want := &model.SessionResults{SessionID: "sess-1"}
	client := &stubClient{script: func(attempt int) (*model.SessionResults, error) {
		if attempt < 3 {
			return nil, fmt.Errorf("poll: %w", interfaces.ErrResultsNotReady)
		}
		return want, nil
	}}

	got, err := WaitForResults(context.Background(), client, "sess-1", pollConfig(), interfaces.NewTestLogger(false))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Error("returned results do not match the ready response")
	}
	if client.attempts != 3 {
		t.Errorf("attempts = %d, want 3", client.attempts)
	}
}

func TestWaitForResultsHardErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	client := &stubClient{script: func(int) (*model.SessionResults, error) {
		return nil, boom
	}}

	_, err := WaitForResults(context.Background(), client, "sess-1", pollConfig(), interfaces.NewTestLogger(false))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want the underlying failure", err)
	}
	if client.attempts != 1 {
		t.Errorf("hard errors must not be retried, attempts = %d", client.attempts)
	}
}

func TestWaitForResultsHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &stubClient{script: func(attempt int) (*model.SessionResults, error) {
		if attempt == 2 {
			cancel()
		}
		return nil, interfaces.ErrResultsNotReady
	}}

	_, err := WaitForResults(ctx, client, "sess-1", pollConfig(), interfaces.NewTestLogger(false))
	if err == nil {
		t.Fatal("cancelled wait must error")
	}
}

func TestWaitForResultsElapsedCeiling(t *testing.T) {
	cfg := pollConfig()
	cfg.PollMaxElapsed = 5 * time.Millisecond
	client := &stubClient{script: func(int) (*model.SessionResults, error) {
		return nil, interfaces.ErrResultsNotReady
	}}

	_, err := WaitForResults(context.Background(), client, "sess-1", cfg, interfaces.NewTestLogger(false))
	if !errors.Is(err, interfaces.ErrResultsNotReady) {
		t.Errorf("exhausted wait should surface the not-ready error, got %v", err)
	}
}
