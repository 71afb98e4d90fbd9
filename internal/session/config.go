package session

import "time"

// Config holds the collaborator endpoint and polling limits.
type Config struct {
	// BaseURL is the authoritative data source, e.g. "https://api.example.com".
	BaseURL string

	// HTTPTimeout bounds a single request.
	HTTPTimeout time.Duration

	// PollInitialInterval is the first retry delay while results are not
	// ready; subsequent delays grow exponentially up to PollMaxInterval.
	PollInitialInterval time.Duration
	PollMaxInterval     time.Duration

	// PollMaxElapsed caps the total time spent waiting for a session to
	// finish processing. Zero means no ceiling beyond the context.
	PollMaxElapsed time.Duration
}

// DefaultConfig returns production polling limits.
func DefaultConfig() Config {
	return Config{
		HTTPTimeout:         30 * time.Second,
		PollInitialInterval: 2 * time.Second,
		PollMaxInterval:     30 * time.Second,
		PollMaxElapsed:      10 * time.Minute,
	}
}
