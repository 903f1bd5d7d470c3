package competition

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		inName      string
		inCountry   string
		wantName    string
		wantCountry string
	}{
		{"complete row", "Premier League", "England", "Premier League", "England"},
		{"not available", "Some Cup", NotAvailable, "Some Cup", NotAvailable},
		{"empty country", "Some Cup", "", "Some Cup", ""},
		{"whitespace country", "Some Cup", "  \n ", "Some Cup", ""},
		{"padded name", "  La Liga ", " Spain", "La Liga", "Spain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.inName, tt.inCountry, "")
			require.Equal(t, tt.wantName, r.Name)
			require.Equal(t, tt.wantCountry, r.Country)
		})
	}
}

func TestHasCountry(t *testing.T) {
	require.True(t, New("Serie A", "Italy", GenderMen).HasCountry())
	require.False(t, New("Some Cup", NotAvailable, "").HasCountry())
	require.False(t, New("Some Cup", "", "").HasCountry())
	require.False(t, (&Record{Name: "Bare"}).HasCountry())
}
