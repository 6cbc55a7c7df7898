package tfl

import (
	"errors"
	"fmt"
)

// NetworkError covers connection, DNS, timeout and body read failures.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// ParseError is returned when the body is not the JSON shape we expect.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind names the failure class of err for logs and metric labels.
func Kind(err error) string {
	var networkErr *NetworkError
	var httpErr *HTTPError
	var parseErr *ParseError

	switch {
	case errors.As(err, &networkErr):
		return "network"
	case errors.As(err, &httpErr):
		return "http"
	case errors.As(err, &parseErr):
		return "parse"
	default:
		return "other"
	}
}

// Describe turns a query failure into a one-line message for the user.
func Describe(err error) string {
	var networkErr *NetworkError
	var httpErr *HTTPError
	var parseErr *ParseError

	switch {
	case errors.As(err, &networkErr):
		return "network error: " + networkErr.Err.Error()
	case errors.As(err, &httpErr):
		return "server returned " + httpErr.Status
	case errors.As(err, &parseErr):
		return "unexpected response: " + parseErr.Err.Error()
	default:
		return err.Error()
	}
}
