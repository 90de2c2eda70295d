package domain

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrUserAgentRequired = NewErr("USER_AGENT_REQUIRED", "user agent not supplied", 0)
	ErrAPIKeyRequired    = NewErr("API_KEY_REQUIRED", "api key not supplied", 0)
	ErrUnauthorized      = NewErr("UNAUTHORIZED", "api key is not authorized", http.StatusUnauthorized)
	ErrForbidden         = NewErr("FORBIDDEN", "user agent not supplied", http.StatusForbidden)
	ErrMalformedRange    = NewErr("MALFORMED_RANGE", "malformed range response", http.StatusOK)
	ErrResponseTooLarge  = NewErr("RESPONSE_TOO_LARGE", "response body too large", http.StatusOK)
	ErrUnexpectedStatus  = NewErr("UNEXPECTED_STATUS", "unexpected status", 0)
)

// Err is a failure the caller can tell apart from a transport error.
// Status is the upstream HTTP status, or 0 when the request was never sent.
type Err struct {
	Code   string `json:"code"`
	Msg    string `json:"message"`
	Status int    `json:"-"`
}

func (e *Err) Error() string { return e.Msg }

// Is matches on Code so that errors built per response still compare
// equal to the package sentinels.
func (e *Err) Is(target error) bool {
	t, ok := target.(*Err)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func NewErr(code, msg string, status int) *Err {
	return &Err{Code: code, Msg: msg, Status: status}
}

func NewUnauthorized(redactedKey string) *Err {
	return NewErr("UNAUTHORIZED", fmt.Sprintf("API %s is not authorized", redactedKey), http.StatusUnauthorized)
}

func NewUnexpectedStatus(status int, text string) *Err {
	return NewErr("UNEXPECTED_STATUS", fmt.Sprintf("call returned %d (%s)", status, text), status)
}

func Status(err error) int {
	if e := asErr(err); e != nil {
		return e.Status
	}
	return 0
}

func Code(err error) string {
	if e := asErr(err); e != nil {
		return e.Code
	}
	return ""
}

func asErr(err error) *Err {
	if err == nil {
		return nil
	}
	if e, ok := errors.Cause(err).(*Err); ok {
		return e
	}
	var e *Err
	if errors.As(err, &e) {
		return e
	}
	return nil
}
