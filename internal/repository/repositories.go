package repository

import (
	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/deppfellow/countries-api/internal/server"
	"github.com/pkg/errors"
)

// Repositories is a container for all repository instances.
//
// Services receive the container instead of individual stores so new
// repositories can be added without changing the wiring.
type Repositories struct {
	Countries CountryStore
}

// NewRepositories constructs the repository container.
//
// The country store is seeded from s.Config.Store.SeedFile when set,
// otherwise from the built-in collection.
func NewRepositories(s *server.Server) (*Repositories, error) {
	seed := domain.DefaultCountries()

	if path := s.Config.Store.SeedFile; path != "" {
		countries, err := LoadSeedFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load seed file")
		}
		seed = countries
	}

	s.Logger.Info().
		Int("countries", len(seed)).
		Str("seed_file", s.Config.Store.SeedFile).
		Msg("country store initialized")

	return &Repositories{
		Countries: NewMemoryCountryStore(seed),
	}, nil
}
