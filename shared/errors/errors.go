package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies an error independently of its HTTP status.
type Kind string

const (
	KindUnauthorized      Kind = "unauthorized"
	KindValidation        Kind = "validation"
	KindUnsupportedAction Kind = "unsupported_action"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindConflict          Kind = "conflict"
	KindStore             Kind = "store"
)

// default error is internal service error at handler level
// if error has different status code use ErrorWithStatusCode
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
	Kind       Kind
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}

func Unauthorized(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusUnauthorized, Kind: KindUnauthorized}
}

func Forbidden(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusForbidden, Kind: KindForbidden}
}

func NotFound(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusNotFound, Kind: KindNotFound}
}

func Validation(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest, Kind: KindValidation}
}

func UnsupportedAction(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusBadRequest, Kind: KindUnsupportedAction}
}

func Conflict(msg string) error {
	return &ErrorWithStatusCode{Message: msg, StatusCode: http.StatusConflict, Kind: KindConflict}
}

// Store surfaces a storage failure to the client. The API contract answers 400 for these.
func Store(err error) error {
	return &ErrorWithStatusCode{Message: err.Error(), StatusCode: http.StatusBadRequest, Kind: KindStore}
}

// KindOf returns the kind of a classified error, or "" for anything else.
func KindOf(err error) Kind {
	var e *ErrorWithStatusCode
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsClassified reports whether err already carries a status code.
func IsClassified(err error) bool {
	var e *ErrorWithStatusCode
	return stderrors.As(err, &e)
}

func IsNotFound(err error) bool {
	var e *ErrorWithStatusCode
	if stderrors.As(err, &e) {
		return e.StatusCode == http.StatusNotFound
	}
	return false
}
