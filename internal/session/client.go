// Package session talks to the authoritative session-data collaborator:
// fetching processed results (with polling while the backend is still
// working), normalizing the two wire forms into the canonical document and
// persisting saved changes back.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/interfaces"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/logging"
	"github.com/Tushar7436/Explaino-frontend-v1-sub000/internal/model"
)

// Client is the net/http backed ResultsClient.
type Client struct {
	cfg    Config
	client *http.Client
	logger logging.Logger
}

var _ interfaces.ResultsClient = (*Client)(nil)

// NewClient builds a collaborator client. httpClient may be nil, in which
// case a default with the configured timeout is used.
func NewClient(cfg Config, logger logging.Logger, httpClient *http.Client) *Client {
	if logger == nil {
		logger = logging.NewStdoutLogger("SessionClient")
	}
	componentLogger := logger.With(logging.Field{Key: "baseUrl", Value: cfg.BaseURL})

	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		cfg:    cfg,
		client: httpClient,
		logger: componentLogger,
	}
}

// resultsEnvelope is the fetch response wrapper. A non-terminal status
// means the backend is still processing the recording.
type resultsEnvelope struct {
	Status  string                `json:"status,omitempty"`
	Error   string                `json:"error,omitempty"`
	Results *model.SessionResults `json:"results"`
}

type savePayload struct {
	Results *model.SessionResults `json:"results"`
	Changes []model.Change        `json:"changes"`
}

// Fetch retrieves and normalizes the results document for a session.
// Returns a wrapped ErrResultsNotReady while processing is in flight.
func (c *Client) Fetch(ctx context.Context, sessionID string) (*model.SessionResults, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/results", c.cfg.BaseURL, sessionID)

	c.logger.Debug("fetching session results",
		logging.Field{Key: "session", Value: sessionID})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch results: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusAccepted:
		return nil, fmt.Errorf("session %s: %w", sessionID, interfaces.ErrResultsNotReady)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch results: unexpected status %d", resp.StatusCode)
	}

	var env resultsEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	switch env.Status {
	case "", "completed", "ready":
	case "failed", "error":
		return nil, fmt.Errorf("session %s processing failed: %s", sessionID, env.Error)
	default:
		return nil, fmt.Errorf("session %s status %q: %w", sessionID, env.Status, interfaces.ErrResultsNotReady)
	}
	if env.Results == nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, interfaces.ErrResultsNotReady)
	}

	env.Results.SessionID = sessionID
	return normalize(env.Results, c.cfg.BaseURL), nil
}

// Save persists the working state and the compacted change list.
func (c *Client) Save(ctx context.Context, sessionID string, results *model.SessionResults, changes []model.Change) error {
	url := fmt.Sprintf("%s/api/sessions/%s/save", c.cfg.BaseURL, sessionID)

	payload, err := json.Marshal(savePayload{Results: results, Changes: changes})
	if err != nil {
		return fmt.Errorf("encode save payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("save session: unexpected status %d", resp.StatusCode)
	}

	c.logger.Info("saved session",
		logging.Field{Key: "session", Value: sessionID},
		logging.Field{Key: "changes", Value: len(changes)})
	return nil
}
