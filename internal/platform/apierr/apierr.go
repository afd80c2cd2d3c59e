package apierr

import (
	"errors"
	"fmt"
	"net/http"

	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
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

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func BadRequest(code string, err error) *Error { return New(http.StatusBadRequest, code, err) }

func NotFound(err error) *Error { return New(http.StatusNotFound, "not_found", err) }

func Conflict(err error) *Error { return New(http.StatusConflict, "conflict", err) }

// From maps sentinel errors to an API error. Anything unrecognised becomes a
// generic 500 so persistence details never leak to clients.
func From(err error) *Error {
	var ae *Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, perrors.ErrNotFound):
		return NotFound(err)
	case errors.Is(err, perrors.ErrConflict):
		return Conflict(err)
	case errors.Is(err, perrors.ErrInvalidArgument):
		return BadRequest("invalid_request", err)
	case errors.Is(err, perrors.ErrUnauthorized):
		return New(http.StatusUnauthorized, "unauthorized", err)
	default:
		return New(http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
	}
}
