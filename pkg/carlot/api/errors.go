package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport wraps network failures: the request never produced a response.
	ErrTransport = errors.New("transport failure")
	// ErrDecode wraps malformed success bodies.
	ErrDecode = errors.New("malformed response body")
)

// StatusError is returned for any non-2xx response. Message is the response
// body text, or a generic message when the body was empty.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

func newStatusError(code int, body []byte) *StatusError {
	msg := string(body)
	if msg == "" {
		msg = fmt.Sprintf("request failed: %d", code)
	}
	return &StatusError{StatusCode: code, Message: msg}
}
