package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingToken is returned by Login when a 2xx response carries no token.
var ErrMissingToken = errors.New("apiclient: login response has no token")

// APIError is a non-2xx response. Message and ErrorText hold the body's "message" and
// "error" fields; both are empty when the body was missing or not JSON.
type APIError struct {
	StatusCode int
	Message    string
	ErrorText  string
}

func (e *APIError) Error() string {
	text := e.ErrorText
	if text == "" {
		text = e.Message
	}
	if text == "" {
		return fmt.Sprintf("apiclient: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("apiclient: %d: %s", e.StatusCode, text)
}

// StatusText returns the reason phrase of the status code.
func (e *APIError) StatusText() string {
	return http.StatusText(e.StatusCode)
}

// MessageOr returns the server's "message" field, or fallback. Used by the auth forms.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// ErrorOr returns the server's "error" field, or fallback. Used by the chat panel.
func ErrorOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.ErrorText != "" {
		return apiErr.ErrorText
	}
	return fallback
}

// DescribeOr returns "error", then "message", then the status text of an API error.
// Other errors (transport failures) yield fallback. Used by the dashboard.
func DescribeOr(err error, fallback string) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch {
	case apiErr.ErrorText != "":
		return apiErr.ErrorText
	case apiErr.Message != "":
		return apiErr.Message
	case apiErr.StatusText() != "":
		return apiErr.StatusText()
	default:
		return fallback
	}
}
