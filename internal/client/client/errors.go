package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable        = errors.New("server unavailable")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// HTTPError is returned for any non-2xx response. Reason carries the text
// body sent by the server, which is meant to be shown to the user.
type HTTPError struct {
	Status int
	Reason string
}

func (e *HTTPError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s: %s", e.Status, http.StatusText(e.Status), e.Reason)
}

// Is makes 401 and 403 responses match ErrUnauthorized.
func (e *HTTPError) Is(target error) bool {
	return target == ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// Reason extracts the user-facing message from err: the server's text for
// an HTTPError, the error string otherwise.
func Reason(err error) string {
	var he *HTTPError
	if errors.As(err, &he) && he.Reason != "" {
		return he.Reason
	}
	return err.Error()
}
