package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pfrederiksen/fbref-comps/internal/competition"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*competition.Record {
	return []*competition.Record{
		competition.New("Premier League", "England", competition.GenderMen),
		competition.New("Some Cup", competition.NotAvailable, ""),
		competition.New("Liga, \"Primera\"", "Spain", competition.GenderWomen),
	}
}

func TestTextReporter(t *testing.T) {
	tests := []struct {
		name    string
		records []*competition.Record
		want    string
	}{
		{
			name:    "complete row",
			records: []*competition.Record{competition.New("Premier League", "England", "")},
			want:    "Competition: Premier League, Country: England\n",
		},
		{
			name:    "missing country",
			records: []*competition.Record{competition.New("Some Cup", competition.NotAvailable, "")},
			want:    "Competition: Some Cup, Country: N/A\n",
		},
		{
			name:    "no records",
			records: nil,
			want:    "",
		},
		{
			name:    "order preserved",
			records: sampleRecords()[:2],
			want:    "Competition: Premier League, Country: England\nCompetition: Some Cup, Country: N/A\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewTextReporter(&buf).Report(tt.records))
			require.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONReporter(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.Report(sampleRecords()))

	var decoded []competition.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	require.Equal(t, "N/A", decoded[1].Country)
	require.Equal(t, competition.GenderMen, decoded[0].Gender)
}

func TestJSONReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONReporter{w: &buf}).Report(nil))
	require.Equal(t, "[]\n", buf.String())
}

func TestCSVReporter(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(FormatCSV, &buf)
	require.NoError(t, err)
	require.NoError(t, r.Report(sampleRecords()))

	want := strings.Join([]string{
		"competition,country,gender",
		"Premier League,England,M",
		"Some Cup,N/A,",
		`"Liga, ""Primera""",Spain,F`,
		"",
	}, "\n")
	require.Equal(t, want, buf.String())
}

func TestTableReporter(t *testing.T) {
	var buf bytes.Buffer
	r, err := New(FormatTable, &buf)
	require.NoError(t, err)
	require.NoError(t, r.Report(sampleRecords()))

	out := buf.String()
	require.Contains(t, out, "Premier League")
	require.Contains(t, out, "N/A")
	require.Contains(t, out, "╭")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" csv ", FormatCSV, false},
		{"table", FormatTable, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := New(Format("yaml"), &bytes.Buffer{})
	require.Error(t, err)
}
