package competition

import "strings"

// NotAvailable is the country used when a row has no country cell
const NotAvailable = "N/A"

// Gender markers as found in the row classes of the competitions table
const (
	GenderMen   = "M"
	GenderWomen = "F"
)

// Record represents one competition row
type Record struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Gender  string `json:"gender,omitempty"`
}

// New creates a Record with trimmed name and country. An empty country is
// kept as is; callers pass NotAvailable when the row has no country cell.
func New(name, country, gender string) *Record {
	return &Record{
		Name:    strings.TrimSpace(name),
		Country: strings.TrimSpace(country),
		Gender:  gender,
	}
}

// HasCountry reports whether the record carries a real country value
func (r *Record) HasCountry() bool {
	return r.Country != "" && r.Country != NotAvailable
}
