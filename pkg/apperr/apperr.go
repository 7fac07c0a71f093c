package apperr

import (
	"errors"
	"net/http"
)

// Error is a request-level failure that maps directly onto an HTTP status
// and a user-facing message. Anything that is not an *Error is treated as
// an internal error at the delivery boundary.
type Error struct {
	Status int
	Msg    string
}

func (e *Error) Error() string {
	return e.Msg
}

// ErrVersionConflict is returned by repositories when a version-checked
// update raced with a concurrent writer.
var ErrVersionConflict = &Error{Status: http.StatusConflict, Msg: "Resource was modified concurrently"}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Msg: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Msg: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Msg: msg}
}

// From extracts the *Error from err, or nil if err is not one.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
