package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/deppfellow/countries-api/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SeedCountry is one record of a seed file.
type SeedCountry struct {
	ID      int     `json:"id" yaml:"id" toml:"id" validate:"gt=0"`
	Name    string  `json:"name" yaml:"name" toml:"name" validate:"required"`
	Capital string  `json:"capital" yaml:"capital" toml:"capital" validate:"required"`
	Area    float64 `json:"area" yaml:"area" toml:"area" validate:"gte=0"`
}

// SeedFile is the document a seed file holds:
//
//	countries:
//	  - id: 1
//	    name: Thailand
//	    capital: Bangkok
//	    area: 513120
type SeedFile struct {
	Countries []SeedCountry `json:"countries" yaml:"countries" toml:"countries" validate:"dive"`
}

// LoadSeedFile reads and validates a seed file. The format is chosen by
// extension: .yaml/.yml, .toml or .json.
func LoadSeedFile(path string) ([]domain.Country, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var file SeedFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	case ".json":
		err = json.Unmarshal(data, &file)
	default:
		return nil, errors.Errorf("unsupported seed file extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", path)
	}

	return file.ToDomain()
}

// ToDomain validates the records and converts them to domain countries.
func (f SeedFile) ToDomain() ([]domain.Country, error) {
	if err := validator.New().Struct(f); err != nil {
		return nil, errors.Wrap(err, "invalid seed record")
	}

	seen := make(map[int]bool, len(f.Countries))
	countries := make([]domain.Country, 0, len(f.Countries))

	for _, c := range f.Countries {
		if seen[c.ID] {
			return nil, errors.Errorf("duplicate seed id %d", c.ID)
		}
		seen[c.ID] = true

		countries = append(countries, domain.Country{
			ID:      c.ID,
			Name:    c.Name,
			Capital: c.Capital,
			Area:    c.Area,
		})
	}

	return countries, nil
}
