package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for any 401 response. Callers treat it
	// as "session expired" and tear the session down.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoToken is returned when a successful login response carries no
	// access token.
	ErrNoToken = errors.New("no token received")
)

// APIError is a non-2xx response from the backend, carrying the
// server-supplied detail message when the body had one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// ErrorMessage returns the server detail from err when it is an APIError
// with one, and fallback otherwise. Views use it to surface server
// messages verbatim with a generic string as the backstop.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}
