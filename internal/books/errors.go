package books

import (
	"errors"
	"fmt"
)

// Error classes reported by Classify.
const (
	ClassTransport = "transport"
	ClassStatus    = "status"
	ClassDecode    = "decode"
)

// StatusError is returned for non-2xx upstream responses.
type StatusError struct {
	Code int
	Body string // truncated
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Code, e.Body)
}

// DecodeError wraps malformed or schema-violating response bodies.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode volumes: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Classify maps an error returned by Client.Volumes to its class.
func Classify(err error) string {
	var se *StatusError
	var de *DecodeError
	switch {
	case errors.As(err, &se):
		return ClassStatus
	case errors.As(err, &de):
		return ClassDecode
	default:
		return ClassTransport
	}
}
