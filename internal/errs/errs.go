// Package errs defines the client-facing error shape. Anything that is not an
// *HTTPError is reported to clients as a generic 500.
package errs

import (
	"net/http"
	"strings"
)

// FieldError is a field-level validation error.
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is serialized as the response body: the message goes out under
// "error", which is what the web client reads.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"error"`
	Status  int          `json:"-"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError, so errors.Is(err, &HTTPError{}) asks "is this a
// client-facing error".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

func newError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

func NewBadRequestError(message string, errors []FieldError) *HTTPError {
	e := newError(http.StatusBadRequest, message)
	e.Errors = errors
	return e
}

func NewUnauthorizedError(message string) *HTTPError {
	return newError(http.StatusUnauthorized, message)
}

func NewNotFoundError(message string) *HTTPError {
	return newError(http.StatusNotFound, message)
}

// NewInternalServerError carries only the generic status text. The cause
// belongs in the logs.
func NewInternalServerError() *HTTPError {
	return newError(http.StatusInternalServerError, "Internal server error")
}
