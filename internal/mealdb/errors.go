package mealdb

import (
	"errors"
	"fmt"
)

// DefaultErrorLabel is used when a caller does not supply a label for a request
const DefaultErrorLabel = "Something went wrong"

// ErrMealNotFound is returned when a lookup or random call yields no meal
var ErrMealNotFound = errors.New("meal not found")

// TransportError wraps a network-level failure. Its message is the message of
// the underlying error.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	Label      string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Label, e.StatusCode)
}

// ParseError is returned when a response body is not valid JSON for the
// expected shape
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsUpstream reports whether err came from talking to the recipe API
func IsUpstream(err error) bool {
	var te *TransportError
	var se *StatusError
	var pe *ParseError
	return errors.As(err, &te) || errors.As(err, &se) || errors.As(err, &pe)
}
