package upstream

import (
	"errors"
	"fmt"
)

// ErrUnavailable marks transport-level failures: the prediction API
// could not be reached at all.
var ErrUnavailable = errors.New("prediction API unavailable")

// APIError is a non-2xx answer from the prediction API, with the
// message unwrapped from its JSON error body when one was sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("prediction API error: %s (status %d)", e.Message, e.StatusCode)
}

// AsAPIError unwraps err into an *APIError if it is one.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
