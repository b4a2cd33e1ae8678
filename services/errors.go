package services

import (
	"errors"
	"fmt"
)

// NotFoundError means a referenced doctor, patient or appointment does not
// exist. Never retried automatically.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ValidationError means the request broke a scheduling rule: illegal
// transition, past-dated start, inverted window, outside working hours or a
// booking conflict. The reason names the rule that failed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func notFound(resource string, id uint) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is a missing-resource failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsValidation reports whether err is a rejected-request failure, as opposed
// to an infrastructure error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
