package search

import "errors"

// ValidationError is a client error: the request is rejected before any
// lookup is made.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ErrQueryRequired is returned when the query is empty after trimming.
var ErrQueryRequired = &ValidationError{Msg: "q is required"}

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
