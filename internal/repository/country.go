package repository

import (
	"context"
	"sync"

	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/pkg/errors"
)

// Store errors.
var (
	ErrCountryNotFound = errors.New("country not found")
	ErrIndexOutOfRange = errors.New("list index out of range")
)

// CountryStore defines the storage operations over the country collection.
// Order is insertion order; ids are unique.
type CountryStore interface {
	// List returns all countries in order.
	List(ctx context.Context) ([]domain.Country, error)

	// At returns the country at a fixed position of the collection.
	At(ctx context.Context, index int) (domain.Country, error)

	// FindByID returns the first country with the given id.
	FindByID(ctx context.Context, id int) (domain.Country, error)

	// Append assigns the next id and adds a country built from fields at the end.
	Append(ctx context.Context, fields domain.CountryFields) (domain.Country, error)

	// Replace overwrites the attributes set in fields on the matching country.
	Replace(ctx context.Context, id int, fields domain.CountryFields) (domain.Country, error)

	// Remove deletes the first country with the given id.
	Remove(ctx context.Context, id int) error

	// Count returns the number of stored countries.
	Count(ctx context.Context) (int, error)
}

// MemoryCountryStore keeps countries in a slice guarded by a RWMutex.
//
// Readers share the lock; Append, Replace and Remove are exclusive, so id
// allocation and insertion happen atomically.
type MemoryCountryStore struct {
	mu        sync.RWMutex
	countries []domain.Country
}

var _ CountryStore = (*MemoryCountryStore)(nil)

// NewMemoryCountryStore creates a store holding a copy of seed.
func NewMemoryCountryStore(seed []domain.Country) *MemoryCountryStore {
	countries := make([]domain.Country, len(seed))
	copy(countries, seed)

	return &MemoryCountryStore{
		countries: countries,
	}
}

func (s *MemoryCountryStore) List(ctx context.Context) ([]domain.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	countries := make([]domain.Country, len(s.countries))
	copy(countries, s.countries)
	return countries, nil
}

func (s *MemoryCountryStore) At(ctx context.Context, index int) (domain.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.countries) {
		return domain.Country{}, errors.WithStack(ErrIndexOutOfRange)
	}
	return s.countries[index], nil
}

func (s *MemoryCountryStore) FindByID(ctx context.Context, id int) (domain.Country, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Country{}, errors.Wrapf(ErrCountryNotFound, "id %d", id)
	}
	return s.countries[i], nil
}

func (s *MemoryCountryStore) Append(ctx context.Context, fields domain.CountryFields) (domain.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	country := domain.Country{ID: domain.NextID(s.countries)}
	fields.Apply(&country)

	s.countries = append(s.countries, country)
	return country, nil
}

func (s *MemoryCountryStore) Replace(ctx context.Context, id int, fields domain.CountryFields) (domain.Country, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Country{}, errors.Wrapf(ErrCountryNotFound, "id %d", id)
	}

	fields.Apply(&s.countries[i])
	return s.countries[i], nil
}

func (s *MemoryCountryStore) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.Wrapf(ErrCountryNotFound, "id %d", id)
	}

	s.countries = append(s.countries[:i], s.countries[i+1:]...)
	return nil
}

func (s *MemoryCountryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.countries), nil
}

// indexOf is a linear scan; callers hold the lock.
func (s *MemoryCountryStore) indexOf(id int) int {
	for i := range s.countries {
		if s.countries[i].ID == id {
			return i
		}
	}
	return -1
}
