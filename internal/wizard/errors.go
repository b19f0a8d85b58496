package wizard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoNextStep        = errors.New("already at the last step")
	ErrNoPrevStep        = errors.New("already at the first step")
	ErrSubmitUnavailable = errors.New("submit is only available on the last step")
	ErrSubmitInFlight    = errors.New("a submission is already in progress")
	ErrNotEditable       = errors.New("the form cannot be edited in the current state")
	ErrNoResult          = errors.New("no generated document yet")
	ErrUnknownField      = errors.New("unknown field")
)

// FieldError flags one invalid input.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every invalid field found by a validation pass.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "please correct the highlighted fields: " + strings.Join(msgs, "; ")
}

// Has reports whether field is among the invalid ones.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// TransportError is a failed request: network, timeout or non-success status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError is an error reported inside a successful response.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string {
	return e.Message
}

// ContentMissingError is a successful response without a document.
type ContentMissingError struct{}

func (e *ContentMissingError) Error() string {
	return "CV content is missing from the server response"
}
