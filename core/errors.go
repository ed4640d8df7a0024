package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

func (err ValidationError) Unwrap() error { return err.Err }

// GenerationError wraps a failure from the content-generation collaborator.
// It is surfaced to the teacher as a display string; the assignment-creation
// flow aborts and no credit is consumed.
type GenerationError struct {
	Err error
}

func NewGenerationError(err error) error {
	return &GenerationError{Err: err}
}

func (err GenerationError) Error() string {
	if err.Err == nil {
		return "content generation failed"
	}
	return "content generation failed: " + err.Err.Error()
}

func (err GenerationError) Unwrap() error { return err.Err }

func IsGenerationError(err error) bool {
	_, ok := errors.Cause(err).(*GenerationError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
