package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"sort"
	"strings"

	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/deppfellow/countries-api/internal/errs"
	"github.com/labstack/echo/v4"
)

// RecordFieldCount is the number of fields of a stored country: the writable
// attributes plus the server-assigned id.
var RecordFieldCount = len(domain.WritableFields) + 1

// Validatable is implemented by request types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// Request is a payload type that binds itself from the echo context and
// then validates the result.
//
// Typical pattern:
//   - Bind reads path params and, for writes, decodes the body with DecodePayload
//   - Validate runs the field-set and count checks and returns *errs.HTTPError
type Request interface {
	Validatable
	Bind(c echo.Context) error
}

// BindAndValidate binds request data into payload and validates it.
//
// Any error returned is already an *errs.HTTPError (or a fault that the
// global error handler renders as a 500).
func BindAndValidate(c echo.Context, payload Request) error {
	if err := payload.Bind(c); err != nil {
		return err
	}
	return payload.Validate()
}

// Payload is a decoded JSON object body, keyed by attribute name.
type Payload map[string]json.RawMessage

// DecodePayload reads the request body as a JSON object.
//
// It returns a 415 Unsupported Media Type when the Content-Type is not JSON or
// the body is not a single JSON object.
func DecodePayload(c echo.Context) (Payload, error) {
	if !IsJSONContentType(c.Request().Header.Get(echo.HeaderContentType)) {
		return nil, errs.NewUnsupportedMediaTypeError(
			"Did not attempt to load JSON data because the request Content-Type was not 'application/json'.")
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return nil, errs.NewUnsupportedMediaTypeError("The request body must be a JSON object.")
	}

	return payload, nil
}

// IsJSONContentType reports whether ctype is application/json or an
// application/*+json type.
func IsJSONContentType(ctype string) bool {
	mediaType, _, err := mime.ParseMediaType(ctype)
	if err != nil {
		return false
	}

	return mediaType == echo.MIMEApplicationJSON ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// CheckFieldSet rejects a payload holding any key outside domain.WritableFields
// with a 422 Unprocessable Entity.
func (p Payload) CheckFieldSet() error {
	allowed := make(map[string]bool, len(domain.WritableFields))
	for _, f := range domain.WritableFields {
		allowed[f] = true
	}

	var fieldErrors []errs.FieldError
	for _, key := range p.keys() {
		if !allowed[key] {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: key,
				Error: "is not a recognized attribute",
			})
		}
	}

	if fieldErrors != nil {
		return errs.NewUnprocessableEntityError(
			fmt.Sprintf("Unknown attribute %q; accepted attributes are %s.",
				fieldErrors[0].Field, strings.Join(domain.WritableFields, ", ")),
			fieldErrors)
	}
	return nil
}

// CheckFullCount requires the payload plus the id to make a complete record.
// Used by create and full replace.
func (p Payload) CheckFullCount() error {
	if len(p)+1 != RecordFieldCount {
		return errs.NewBadRequestError(
			fmt.Sprintf("Expected %d attributes, got %d.", RecordFieldCount-1, len(p)), nil)
	}
	return nil
}

// CheckPartialCount only rejects payloads larger than a complete record.
// Used by partial update.
func (p Payload) CheckPartialCount() error {
	if len(p)+1 > RecordFieldCount {
		return errs.NewBadRequestError(
			fmt.Sprintf("Expected at most %d attributes, got %d.", RecordFieldCount-1, len(p)), nil)
	}
	return nil
}

// CountryFields decodes the payload values into typed country attributes.
//
// name and capital must be JSON strings and area a JSON number; anything else,
// null included, is a 400 Bad Request.
func (p Payload) CountryFields() (domain.CountryFields, error) {
	var fields domain.CountryFields
	var fieldErrors []errs.FieldError

	decode := func(key string, dst interface{}, kind string) bool {
		raw, ok := p[key]
		if !ok {
			return false
		}
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) || json.Unmarshal(raw, dst) != nil {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: key, Error: "must be a " + kind})
			return false
		}
		return true
	}

	var name, capital string
	var area float64

	if decode(domain.FieldName, &name, "string") {
		fields.Name = &name
	}
	if decode(domain.FieldCapital, &capital, "string") {
		fields.Capital = &capital
	}
	if decode(domain.FieldArea, &area, "number") {
		fields.Area = &area
	}

	if fieldErrors != nil {
		return domain.CountryFields{}, errs.NewBadRequestError(
			fmt.Sprintf("Attribute %q %s.", fieldErrors[0].Field, fieldErrors[0].Error), fieldErrors)
	}

	return fields, nil
}

// keys returns the payload keys sorted, so error messages are stable.
func (p Payload) keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
