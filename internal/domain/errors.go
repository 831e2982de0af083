package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned when the credential is missing or rejected
	ErrAuthentication = errors.New("authentication failed")
	// ErrRequest is returned when the service rejects the prompt or parameters
	ErrRequest = errors.New("request rejected")
	// ErrTransport is returned when the service could not be reached
	ErrTransport = errors.New("transport failure")
	// ErrEmptyResult is returned when a successful call yields no images
	ErrEmptyResult = errors.New("no image generated")
)

// APIError is a failure reported by the image service itself
type APIError struct {
	Kind       error
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no error message"
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%v: status %d: %s", e.Kind, e.StatusCode, msg)
	}
	return fmt.Sprintf("%v: %s", e.Kind, msg)
}

// Unwrap exposes the error kind to errors.Is
func (e *APIError) Unwrap() error {
	return e.Kind
}
