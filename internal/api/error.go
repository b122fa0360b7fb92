package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is matched with errors.Is against any API error whose
// status is 401. The session store subscribes to these via the client's
// OnUnauthorized callback; screens use the sentinel to decide routing.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a structured server rejection: the HTTP status plus the
// human-readable detail message from the response payload.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 responses.
func (e *Error) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// IsNotFound reports whether err is a server 404 rejection.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
