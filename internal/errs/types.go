package errs

import "strings"

// FieldError represents a field-level validation problem.
// Example:
//
//	{ "field": "population", "error": "is not a recognized attribute" }
//
// Field errors are never rendered to the client; the error handler logs
// them next to the aborted status.
type FieldError struct {
	// Field is the payload key the error relates to (e.g. "area").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// It is designed to be serialized directly to JSON:
//
//	{ "code": 404, "message": "Not Found", "description": "..." }
//
// Fields:
//   - Code: the HTTP status code.
//   - Message: the status name (http.StatusText).
//   - Description: a human sentence explaining the abort.
//   - Errors: per-field details, kept for logs only.
type HTTPError struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
//
// It returns "<Message>: <Description>" so logs carry both parts.
func (e *HTTPError) Error() string {
	return e.Message + ": " + e.Description
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// Two HTTPErrors match when they carry the same status code, so
// callers can write errors.Is(err, errs.NewNotFoundError("")).
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to build stable machine-readable labels for logs and tracing.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
