// Package errs defines the typed error returned by the use case layer.
//
// Services never build transport responses. They return an *Error whose Kind
// tells the interface layer how to render it, and whose Message is safe to
// show to API clients.
package errs

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// InternalMessage is the client-facing message for every internal failure.
const InternalMessage = "Internal error - Try again later"

type Error struct {
	Kind    Kind
	Message string
	// Status overrides the default status of the kind when the cause carried one.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCarrier is implemented by causes that know their own status code.
type StatusCarrier interface {
	StatusCode() int
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Internal(err error) *Error {
	e := &Error{Kind: KindInternal, Message: InternalMessage, Err: err}
	var sc StatusCarrier
	if errors.As(err, &sc) {
		e.Status = sc.StatusCode()
	}
	return e
}

// As normalizes err into an *Error. Anything that is not already typed is
// treated as an internal failure.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
