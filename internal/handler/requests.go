package handler

import (
	"strconv"

	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/deppfellow/countries-api/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EmptyRequest is the request of endpoints that read nothing from the request.
type EmptyRequest struct{}

func (r *EmptyRequest) Bind(c echo.Context) error { return nil }
func (r *EmptyRequest) Validate() error           { return nil }

// CountryIDRequest carries the raw {id} path segment.
//
// Parsing is deferred to ID so body checks always run first on writes.
type CountryIDRequest struct {
	RawID string
}

func (r *CountryIDRequest) Bind(c echo.Context) error {
	r.RawID = c.Param("id")
	return nil
}

func (r *CountryIDRequest) Validate() error { return nil }

// ID parses the path segment. A non-integer id is not an abort: the error
// is returned as is and rendered as a 500.
func (r *CountryIDRequest) ID() (int, error) {
	id, err := strconv.Atoi(r.RawID)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid country id %q", r.RawID)
	}
	return id, nil
}

// countryBody is the JSON object body shared by the write requests.
type countryBody struct {
	Payload validation.Payload
	Fields  domain.CountryFields
}

func (b *countryBody) bind(c echo.Context) error {
	payload, err := validation.DecodePayload(c)
	if err != nil {
		return err
	}
	b.Payload = payload
	return nil
}

// validate runs the checks in abort order: field set (422), count (400),
// then field types (400).
func (b *countryBody) validate(full bool) error {
	if err := b.Payload.CheckFieldSet(); err != nil {
		return err
	}

	if full {
		if err := b.Payload.CheckFullCount(); err != nil {
			return err
		}
	} else if err := b.Payload.CheckPartialCount(); err != nil {
		return err
	}

	fields, err := b.Payload.CountryFields()
	if err != nil {
		return err
	}
	b.Fields = fields
	return nil
}

// CreateCountryRequest is the body of POST /countries.
type CreateCountryRequest struct {
	countryBody
}

func (r *CreateCountryRequest) Bind(c echo.Context) error { return r.bind(c) }
func (r *CreateCountryRequest) Validate() error           { return r.validate(true) }

// ReplaceCountryRequest is PUT /countries/:id. Every attribute must be sent.
type ReplaceCountryRequest struct {
	CountryIDRequest
	countryBody
}

func (r *ReplaceCountryRequest) Bind(c echo.Context) error {
	if err := r.CountryIDRequest.Bind(c); err != nil {
		return err
	}
	return r.bind(c)
}

func (r *ReplaceCountryRequest) Validate() error { return r.validate(true) }

// PatchCountryRequest is PATCH /countries/:id. Any subset of attributes may be sent.
type PatchCountryRequest struct {
	CountryIDRequest
	countryBody
}

func (r *PatchCountryRequest) Bind(c echo.Context) error {
	if err := r.CountryIDRequest.Bind(c); err != nil {
		return err
	}
	return r.bind(c)
}

func (r *PatchCountryRequest) Validate() error { return r.validate(false) }
