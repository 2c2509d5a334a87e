package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrRunNotFound  = errors.New("run not found")
	ErrShuttingDown = errors.New("service is shutting down")
	ErrTransport    = errors.New("transport failure")
	ErrParse        = errors.New("malformed font-face block")
	ErrIO           = errors.New("local write failure")
	ErrTooLarge     = errors.New("response exceeds size limit")
	ErrInvalidURL   = errors.New("invalid url")
)

// StatusError reports a response with a status other than 200 OK.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// StatusCode extracts the HTTP status carried by err, or 0 if there is none.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}
