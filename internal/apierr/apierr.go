package apierr

import (
	"fmt"
	"net/http"
)

// Kind is the failure taxonomy the engine surfaces. Every core operation
// fails with exactly one kind; the HTTP layer owns the transport mapping.
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindConflict       Kind = "conflict"
	KindInvalidState   Kind = "invalid_state"
	KindAccessDenied   Kind = "access_denied"
	KindAmbiguousScope Kind = "ambiguous_scope"
	KindRateLimited    Kind = "rate_limited"
	KindNotEnrolled    Kind = "not_enrolled"
)

type Error struct {
	Status int
	Code   string
	Kind   Kind
	Meta   map[string]any
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) WithMeta(key string, val any) *Error {
	if e == nil {
		return nil
	}
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = val
	return e
}

func New(status int, code string, kind Kind, err error) *Error {
	return &Error{Status: status, Code: code, Kind: kind, Err: err}
}

func NotFound(code string, err error) *Error {
	return New(http.StatusNotFound, code, KindNotFound, err)
}

func Conflict(code string, err error) *Error {
	return New(http.StatusConflict, code, KindConflict, err)
}

func InvalidState(code string, err error) *Error {
	return New(http.StatusUnprocessableEntity, code, KindInvalidState, err)
}

func AccessDenied(code string, err error) *Error {
	return New(http.StatusForbidden, code, KindAccessDenied, err)
}

func AmbiguousScope(code string, err error) *Error {
	return New(http.StatusConflict, code, KindAmbiguousScope, err)
}

func RateLimited(code string, err error) *Error {
	return New(http.StatusTooManyRequests, code, KindRateLimited, err)
}

func NotEnrolled(code string, err error) *Error {
	return New(http.StatusConflict, code, KindNotEnrolled, err)
}

func Internal(code string, err error) *Error {
	return New(http.StatusInternalServerError, code, "", err)
}
