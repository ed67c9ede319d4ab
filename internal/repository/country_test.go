package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func germany() domain.CountryFields {
	return domain.CountryFields{Name: strPtr("Germany"), Capital: strPtr("Berlin"), Area: floatPtr(357022)}
}

func TestMemoryCountryStore_List(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())

	countries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCountries(), countries)

	// The returned slice is a copy.
	countries[0].Name = "Siam"
	again, _ := store.List(context.Background())
	assert.Equal(t, "Thailand", again[0].Name)
}

func TestMemoryCountryStore_SeedIsCopied(t *testing.T) {
	seed := domain.DefaultCountries()
	store := NewMemoryCountryStore(seed)

	seed[1].Name = "changed"

	c, err := store.At(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Australia", c.Name)
}

func TestMemoryCountryStore_At(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())

	c, err := store.At(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, c.ID)

	_, err = store.At(context.Background(), 3)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	_, err = NewMemoryCountryStore(nil).At(context.Background(), 1)
	assert.EqualError(t, err, "list index out of range")
}

func TestMemoryCountryStore_FindByID(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())

	c, err := store.FindByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Egypt", c.Name)

	_, err = store.FindByID(context.Background(), 42)
	assert.True(t, errors.Is(err, ErrCountryNotFound))
}

func TestMemoryCountryStore_AppendAllocatesNextID(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())

	created, err := store.Append(context.Background(), germany())
	require.NoError(t, err)
	assert.Equal(t, domain.Country{ID: 4, Name: "Germany", Capital: "Berlin", Area: 357022}, created)

	countries, _ := store.List(context.Background())
	require.Len(t, countries, 4)
	assert.Equal(t, created, countries[3])
}

func TestMemoryCountryStore_AppendOnEmptyStore(t *testing.T) {
	store := NewMemoryCountryStore(nil)

	created, err := store.Append(context.Background(), germany())
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
}

func TestMemoryCountryStore_AppendAfterRemovingMax(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())
	require.NoError(t, store.Remove(context.Background(), 3))

	created, err := store.Append(context.Background(), germany())
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID, "ids follow the current maximum")
}

func TestMemoryCountryStore_Replace(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())

	updated, err := store.Replace(context.Background(), 2, domain.CountryFields{Capital: strPtr("Sydney")})
	require.NoError(t, err)
	assert.Equal(t, domain.Country{ID: 2, Name: "Australia", Capital: "Sydney", Area: 7617930}, updated)

	found, _ := store.FindByID(context.Background(), 2)
	assert.Equal(t, updated, found)

	_, err = store.Replace(context.Background(), 99, germany())
	assert.True(t, errors.Is(err, ErrCountryNotFound))
}

func TestMemoryCountryStore_Remove(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())

	require.NoError(t, store.Remove(context.Background(), 2))

	count, _ := store.Count(context.Background())
	assert.Equal(t, 2, count)

	_, err := store.FindByID(context.Background(), 2)
	assert.True(t, errors.Is(err, ErrCountryNotFound))

	err = store.Remove(context.Background(), 2)
	assert.True(t, errors.Is(err, ErrCountryNotFound))
}

// Race Condition Test
func TestMemoryCountryStore_ConcurrentAppend(t *testing.T) {
	store := NewMemoryCountryStore(domain.DefaultCountries())
	var wg sync.WaitGroup
	numGoroutines := 50

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Append(context.Background(), germany())
			assert.NoError(t, err)
			_, _ = store.List(context.Background())
		}()
	}
	wg.Wait()

	countries, _ := store.List(context.Background())
	require.Len(t, countries, 3+numGoroutines)

	seen := make(map[int]bool)
	for _, c := range countries {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
	assert.Equal(t, 3+numGoroutines+1, domain.NextID(countries))
}
