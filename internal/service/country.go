package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/deppfellow/countries-api/internal/errs"
	"github.com/deppfellow/countries-api/internal/repository"
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// FeaturedIndex is the store position served by GET /country.
const FeaturedIndex = 1

// CountryService implements the country operations on top of a CountryStore.
//
// Store misses become 404 HTTPErrors here. Every other store error is
// returned as is and ends up as a 500.
type CountryService struct {
	server *server.Server
	store  repository.CountryStore
}

func NewCountryService(s *server.Server, store repository.CountryStore) *CountryService {
	return &CountryService{
		server: s,
		store:  store,
	}
}

// List returns every stored country in order.
func (cs *CountryService) List(ctx context.Context) ([]domain.Country, error) {
	return cs.store.List(ctx)
}

// Featured returns the country at FeaturedIndex.
func (cs *CountryService) Featured(ctx context.Context) (domain.Country, error) {
	return cs.store.At(ctx, FeaturedIndex)
}

// Get returns the country with the given id.
func (cs *CountryService) Get(ctx context.Context, id int) (domain.Country, error) {
	country, err := cs.store.FindByID(ctx, id)
	if err != nil {
		return domain.Country{}, notFound(err, id)
	}
	return country, nil
}

// Create stores a new country and returns it with its assigned id.
func (cs *CountryService) Create(ctx context.Context, fields domain.CountryFields) (domain.Country, error) {
	country, err := cs.store.Append(ctx, fields)
	if err != nil {
		return domain.Country{}, err
	}

	cs.logger(ctx).Debug().
		Int("country_id", country.ID).
		Str("name", country.Name).
		Msg("country created")

	return country, nil
}

// Update overwrites the attributes set in fields on the country with the given id.
// It serves both the full replace and the partial update.
func (cs *CountryService) Update(ctx context.Context, id int, fields domain.CountryFields) (domain.Country, error) {
	country, err := cs.store.Replace(ctx, id, fields)
	if err != nil {
		return domain.Country{}, notFound(err, id)
	}

	cs.logger(ctx).Debug().
		Int("country_id", id).
		Int("fields", fields.Len()).
		Msg("country updated")

	return country, nil
}

// Delete removes the country with the given id.
func (cs *CountryService) Delete(ctx context.Context, id int) error {
	if err := cs.store.Remove(ctx, id); err != nil {
		return notFound(err, id)
	}

	cs.logger(ctx).Debug().Int("country_id", id).Msg("country deleted")
	return nil
}

// Count returns the number of stored countries.
func (cs *CountryService) Count(ctx context.Context) (int, error) {
	return cs.store.Count(ctx)
}

// logger prefers the request-scoped logger carried by ctx.
func (cs *CountryService) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return cs.server.Logger
}

func notFound(err error, id int) error {
	if errors.Is(err, repository.ErrCountryNotFound) {
		return errs.NewNotFoundError(fmt.Sprintf("Country with id %d was not found.", id))
	}
	return err
}
