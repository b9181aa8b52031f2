package core

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrMalformedHex = errors.New("malformed hex")
var ErrLengthMismatch = errors.New("hex length mismatch")

// TransportError is returned when the node could not be reached: connection
// refused, TLS handshake failure, transport timeout or a cancelled context.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport error calling %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError is returned when the response body is not JSON or does not
// match the shape expected by the caller. Body holds the raw response.
type DecodeError struct {
	Method string
	Body   []byte
	Err    error
}

// bodies longer than this are cut in error strings, the full body stays in Body
const maxErrorBody = 512

func (e *DecodeError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	return fmt.Sprintf("%s: cannot decode response: %v, body: %s", e.Method, e.Err, string(body))
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ApplicationError carries the error object returned by the remote node.
// Codes are defined by the node and passed through untouched.
type ApplicationError struct {
	Code    int64
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("Code: %d, Message: %s", e.Code, e.Message)
}

// ConfigError reports invalid client configuration, including TLS trust and
// identity material. It is raised while the client is built.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsApplicationCode reports whether err is an application error with the
// given code.
func IsApplicationCode(err error, code int64) bool {
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}

	return false
}
