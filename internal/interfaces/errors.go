package interfaces

import "errors"

// ErrResultsNotReady is returned by ResultsClient.Fetch while the backend
// is still processing the session. Callers are expected to retry with
// backoff rather than fail.
var ErrResultsNotReady = errors.New("session results not ready")
