package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuestion is returned when the trivia service answers successfully but with no results.
	ErrNoQuestion = errors.New("trivia service returned no question")
	// ErrMalformedResponse indicates the trivia response body could not be decoded.
	ErrMalformedResponse = errors.New("malformed trivia response")
)

// UpstreamTransportError reports a failed HTTP exchange with the trivia service.
// StatusCode is zero when no response was received.
type UpstreamTransportError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamTransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("trivia service unreachable: %v", e.Err)
	}
	return fmt.Sprintf("trivia service responded with status %d", e.StatusCode)
}

func (e *UpstreamTransportError) Unwrap() error {
	return e.Err
}

// UpstreamApplicationError reports a non-zero response_code in a successful response.
type UpstreamApplicationError struct {
	Code int
}

func (e *UpstreamApplicationError) Error() string {
	return fmt.Sprintf("trivia service returned response code %d", e.Code)
}
