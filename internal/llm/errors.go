package llm

import (
	"errors"
	"fmt"
)

// APIError is a transport or vendor failure from the model gateway. It
// carries an HTTP-style status code suitable for direct propagation to the
// caller. Retryable marks failures the caller may reasonably retry (timeouts,
// rate limits, temporary unavailability); the gateway itself never retries.
type APIError struct {
	StatusCode int
	Message    string
	Retryable  bool
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("model gateway error (status %d): %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned an empty or unparseable
// body: the output contract was violated, as opposed to a transport failure.
type ErrInvalidResponse struct {
	Content []byte
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid model response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// IsRetryable reports whether err is an APIError the caller may retry.
func IsRetryable(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Retryable
}
