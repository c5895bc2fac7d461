package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingAuth is returned before any network call when the session holds
// no bearer token.
var ErrMissingAuth = errors.New("no bearer token, please log in")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports a duplicate-create rejection: two racing creates for the
// same record, where the server kept the first.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsTransient reports failures worth re-triggering by the user: network
// errors and server-side 5xx responses.
func IsTransient(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	return err != nil && !errors.Is(err, ErrMissingAuth)
}
