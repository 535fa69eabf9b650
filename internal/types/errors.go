package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidClientRecord = errors.New("invalid client record")

	ErrUpstream = errors.New("upstream api error")
)

// Err joins a typed sentinel with an optional inner error and message so that
// callers can match with errors.Is while still seeing the details.
func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}

// Validation error kinds. They double as the "type" of each entry in the
// 422 response body.
const (
	KindMissing        = "missing"
	KindStringType     = "string_type"
	KindStringUnicode  = "string_unicode"
	KindStringTooShort = "string_too_short"
	KindStringTooLong  = "string_too_long"
	KindValueError     = "value_error"
)

// ValidationError reports a single field that failed the client record rules.
type ValidationError struct {
	Field  string
	Reason string
	Kind   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidClientRecord
}

// ValidationErrors is every violation found in one input, in field order.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return "invalid client record: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

// Is matches ErrInvalidClientRecord even when the list is empty.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidClientRecord
}
