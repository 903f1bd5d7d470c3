package scraper

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrBlocked is returned for a 403 response, which FBref sends when it
// rejects automated access.
var ErrBlocked = errors.New("access forbidden")

// ErrTimeout marks a request that did not complete within the timeout
var ErrTimeout = errors.New("request timed out")

// BlockedMessage is printed when the site answers 403
const BlockedMessage = "Access forbidden. The website might be blocking web scraping attempts."

// StatusError is returned for any non-2xx status other than 403
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// CheckStatus gates a response on its status code
func CheckStatus(code int) error {
	if code == http.StatusForbidden {
		return ErrBlocked
	}
	if code < 200 || code > 299 {
		return &StatusError{StatusCode: code}
	}
	return nil
}

// isTimeout reports whether err came from an exceeded deadline
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
