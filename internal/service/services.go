package service

import (
	"github.com/deppfellow/countries-api/internal/repository"
	"github.com/deppfellow/countries-api/internal/server"
)

// Services groups the business services handed to the HTTP layer.
type Services struct {
	Countries *CountryService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Countries: NewCountryService(s, repos.Countries),
	}, nil
}
