package api

import (
	"errors"
	"fmt"
)

// APIError is a structured backend error: the server answered with a non-2xx
// status. Message is the human-readable text extracted from a well-formed
// {"message": "..."} body and is empty otherwise; callers must supply their
// own fallback text when it is empty.
//
// Transport-level failures are never wrapped into APIError, so callers can
// discriminate "the server rejected this" from "the server was unreachable"
// with AsAPIError.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%d)", e.Status)
}

// AsAPIError unwraps err into an *APIError if there is one in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// ErrorMessage returns the structured message carried by err, or fallback
// when err is a transport failure or the body carried no usable message.
func ErrorMessage(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
