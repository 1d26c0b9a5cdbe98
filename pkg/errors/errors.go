package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden is returned when the caller is authenticated but lacks the required role
type ErrForbidden struct {
	Message string
}

func (e *ErrForbidden) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "forbidden"
}

// ErrConflict is returned when there's a conflict (e.g., duplicate exclusion)
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// IsNotFound reports whether err (or anything it wraps) is an *ErrNotFound.
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	return stderrors.As(err, &nf)
}

// IsConflict reports whether err (or anything it wraps) is an *ErrConflict.
func IsConflict(err error) bool {
	var c *ErrConflict
	return stderrors.As(err, &c)
}

// As is errors.As, re-exported so callers need only this package
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// HTTPStatus maps a typed error to its HTTP status code. Unknown errors are 500.
func HTTPStatus(err error) int {
	var (
		nf  *ErrNotFound
		un  *ErrUnauthorized
		fb  *ErrForbidden
		cf  *ErrConflict
		val *ErrValidation
	)
	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.As(err, &val):
		return http.StatusBadRequest
	case stderrors.As(err, &un):
		return http.StatusUnauthorized
	case stderrors.As(err, &fb):
		return http.StatusForbidden
	case stderrors.As(err, &nf):
		return http.StatusNotFound
	case stderrors.As(err, &cf):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
