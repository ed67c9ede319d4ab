// Package domain holds the records the API serves.
package domain

// Attribute names accepted on write. The id is never client-supplied.
const (
	FieldName    = "name"
	FieldCapital = "capital"
	FieldArea    = "area"
)

// WritableFields is the exact set of attributes a payload may carry.
var WritableFields = []string{FieldName, FieldCapital, FieldArea}

// Country represents a single country record.
type Country struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Capital string  `json:"capital"`
	Area    float64 `json:"area"`
}

// CountryFields carries the attributes of a write request.
// A nil field was not present in the payload and is left untouched.
type CountryFields struct {
	Name    *string
	Capital *string
	Area    *float64
}

// Len reports how many attributes are set.
func (f CountryFields) Len() int {
	n := 0
	if f.Name != nil {
		n++
	}
	if f.Capital != nil {
		n++
	}
	if f.Area != nil {
		n++
	}
	return n
}

// Apply overwrites the attributes of c that are set in f. The id is never touched.
func (f CountryFields) Apply(c *Country) {
	if f.Name != nil {
		c.Name = *f.Name
	}
	if f.Capital != nil {
		c.Capital = *f.Capital
	}
	if f.Area != nil {
		c.Area = *f.Area
	}
}

// NextID returns one plus the largest id in countries.
// An empty collection starts at 1.
func NextID(countries []Country) int {
	max := 0
	for _, c := range countries {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// DefaultCountries is the collection the store starts with when no seed file is configured.
func DefaultCountries() []Country {
	return []Country{
		{ID: 1, Name: "Thailand", Capital: "Bangkok", Area: 513120},
		{ID: 2, Name: "Australia", Capital: "Canberra", Area: 7617930},
		{ID: 3, Name: "Egypt", Capital: "Cairo", Area: 1010408},
	}
}
