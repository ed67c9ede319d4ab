package errs

import (
	"net/http"
)

// Default descriptions per status. They follow the wording the API has
// always returned, so clients matching on them keep working.
var defaultDescriptions = map[int]string{
	http.StatusBadRequest:           "The browser (or proxy) sent a request that this server could not understand.",
	http.StatusNotFound:             "The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.",
	http.StatusMethodNotAllowed:     "The method is not allowed for the requested URL.",
	http.StatusUnsupportedMediaType: "The server does not support the media type transmitted in the request.",
	http.StatusUnprocessableEntity:  "The request was well-formed but was unable to be followed due to semantic errors.",
	http.StatusTooManyRequests:      "This user has exceeded an allotted request count. Try again later.",
}

// New creates an HTTPError for any status.
//
// An empty description falls back to the default sentence for that status
// (or to the status text when no default exists).
func New(status int, description string) *HTTPError {
	if description == "" {
		description = DefaultDescription(status)
	}

	return &HTTPError{
		// http.StatusText(404) => "Not Found"
		Code:        status,
		Message:     http.StatusText(status),
		Description: description,
	}
}

// DefaultDescription returns the canned description for status.
func DefaultDescription(status int) string {
	if d, ok := defaultDescriptions[status]; ok {
		return d
	}
	return http.StatusText(status)
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// errors is an optional slice of field errors (logged, not rendered).
// This is designed for "you sent the wrong number or kind of fields" cases.
func NewBadRequestError(description string, errors []FieldError) *HTTPError {
	e := New(http.StatusBadRequest, description)
	e.Errors = errors
	return e
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(description string) *HTTPError {
	return New(http.StatusNotFound, description)
}

// NewMethodNotAllowedError creates a 405 Method Not Allowed HTTPError.
func NewMethodNotAllowedError(description string) *HTTPError {
	return New(http.StatusMethodNotAllowed, description)
}

// NewUnsupportedMediaTypeError creates a 415 Unsupported Media Type HTTPError.
//
// Returned whenever a write request does not carry a JSON object body.
func NewUnsupportedMediaTypeError(description string) *HTTPError {
	return New(http.StatusUnsupportedMediaType, description)
}

// NewUnprocessableEntityError creates a 422 Unprocessable Entity HTTPError.
//
// Returned when the payload names an attribute outside the accepted set.
func NewUnprocessableEntityError(description string, errors []FieldError) *HTTPError {
	e := New(http.StatusUnprocessableEntity, description)
	e.Errors = errors
	return e
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(description string) *HTTPError {
	return New(http.StatusTooManyRequests, description)
}

// InternalError is the body rendered for every fault that is not an HTTPError.
//
// Example:
//
//	{ "error": "list index out of range" }
type InternalError struct {
	Error string `json:"error"`
}

// NewInternalError wraps err into the 500 response body.
func NewInternalError(err error) InternalError {
	if err == nil {
		return InternalError{Error: http.StatusText(http.StatusInternalServerError)}
	}
	return InternalError{Error: err.Error()}
}
