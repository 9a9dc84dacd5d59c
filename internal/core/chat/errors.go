package chat

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnknownResponse is returned for a 2xx body with neither choices nor an error.
var ErrUnknownResponse = errors.New("chat response has neither choices nor error")

// RequestFailedError is returned when the endpoint answers with status >= 400.
type RequestFailedError struct {
	Status int
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("chat request failed: %d %s", e.Status, http.StatusText(e.Status))
}

// ProviderError is an error object returned in a 2xx response body.
type ProviderError struct {
	Message string
	Kind    string
}

func (e *ProviderError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("provider error (%s): %s", e.Kind, e.Message)
	}
	return "provider error: " + e.Message
}

// ResponseParseError is returned when a 2xx body is not valid JSON.
type ResponseParseError struct {
	Err error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("parse chat response: %v", e.Err)
}

func (e *ResponseParseError) Unwrap() error {
	return e.Err
}
