package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedModel = errors.New("only GPT-5 models are supported")
	ErrNoTextContent    = errors.New("no text content in response output")
	ErrEmptyResponse    = errors.New("empty response")
)

// APIError is a failing status that carried the vendor's error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	Param      string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Message)
}

// StatusError is a failing status whose body was not a vendor error envelope.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed with status %d and body %s", e.StatusCode, e.Body)
}

type DecodeKind int

const (
	// MalformedBody means the body was not JSON at all.
	MalformedBody DecodeKind = iota
	// SchemaMismatch means the body was JSON but not a Response.
	SchemaMismatch
)

// DecodeError is a successful status whose body could not be decoded. Body
// holds the raw payload for diagnostics.
type DecodeError struct {
	Kind DecodeKind
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Kind == MalformedBody {
		return fmt.Sprintf("invalid JSON response: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
