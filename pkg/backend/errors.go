package backend

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("invalid backend client config")
	ErrEmptyEndpoint = errors.New("endpoint is empty")
)

// FailureKind classifies why a fetch was given up on.
type FailureKind string

const (
	KindTimeout   FailureKind = "timeout"
	KindTransport FailureKind = "transport"
	KindDecode    FailureKind = "decode"
)

// FetchError is the terminal error surfaced after all retry attempts are
// exhausted. It carries the endpoint path and the number of attempts made.
type FetchError struct {
	Kind     FailureKind
	Endpoint string
	Attempts int
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s failed after %d attempt(s): %s: %v", e.Endpoint, e.Attempts, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
