package remote

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind classifies the outcome of a call.
type Kind int

const (
	// KindOK means the backend answered with a 2xx status.
	KindOK Kind = iota
	// KindNetworkUnavailable means the backend was not reached: timeout,
	// refused connection, DNS or other transport failure.
	KindNetworkUnavailable
	// KindRejected means the backend answered with a non-2xx status.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNetworkUnavailable:
		return "network_unavailable"
	case KindRejected:
		return "rejected"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ErrNetworkUnavailable is matched by errors.Is for every network failure.
var ErrNetworkUnavailable = errors.New("backend unreachable")

// RejectedError carries the message of a backend rejection.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	return e.Message
}

// Result is the outcome of one call. Exactly one of the three kinds applies.
type Result struct {
	Kind    Kind
	Status  int
	Body    []byte
	Message string
	Err     error
}

// OK reports whether the backend accepted the call.
func (r Result) OK() bool {
	return r.Kind == KindOK
}

// Decode unmarshals the body of a successful call into v.
func (r Result) Decode(v interface{}) error {
	if r.Kind != KindOK {
		return r.Error()
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Error returns nil for a successful call, an error wrapping
// ErrNetworkUnavailable for network failures and a *RejectedError for
// rejections.
func (r Result) Error() error {
	switch r.Kind {
	case KindOK:
		return nil
	case KindNetworkUnavailable:
		if r.Err != nil {
			return fmt.Errorf("%w: %v", ErrNetworkUnavailable, r.Err)
		}
		return ErrNetworkUnavailable
	default:
		return &RejectedError{Status: r.Status, Message: r.Message}
	}
}
