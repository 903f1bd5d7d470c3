package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pfrederiksen/fbref-comps/internal/competition"
)

// Format names an output format
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

// Formats lists the supported formats
var Formats = []Format{FormatText, FormatJSON, FormatCSV, FormatTable}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid format: %s (must be one of text, json, csv, table)", s)
}

// Reporter writes a sequence of competitions
type Reporter interface {
	Report(records []*competition.Record) error
}

// New returns the reporter for a format
func New(format Format, w io.Writer) (Reporter, error) {
	switch format {
	case FormatText, "":
		return &TextReporter{w: w}, nil
	case FormatJSON:
		return &JSONReporter{w: w}, nil
	case FormatCSV:
		return &CSVReporter{w: w}, nil
	case FormatTable:
		return &TableReporter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// TextReporter prints one line per competition
type TextReporter struct {
	w io.Writer
}

// NewTextReporter creates a TextReporter writing to w
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Report prints the records in order
func (r *TextReporter) Report(records []*competition.Record) error {
	for _, rec := range records {
		if _, err := fmt.Fprintln(r.w, FormatLine(rec)); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	return nil
}

// FormatLine renders the text line for one competition
func FormatLine(rec *competition.Record) string {
	return fmt.Sprintf("Competition: %s, Country: %s", rec.Name, rec.Country)
}

// JSONReporter writes the records as an indented JSON array
type JSONReporter struct {
	w io.Writer
}

func (r *JSONReporter) Report(records []*competition.Record) error {
	if records == nil {
		records = []*competition.Record{}
	}
	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(records)
}

// CSVReporter writes a header and one row per competition
type CSVReporter struct {
	w io.Writer
}

func (r *CSVReporter) Report(records []*competition.Record) error {
	cw := csv.NewWriter(r.w)
	if err := cw.Write([]string{"competition", "country", "gender"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write([]string{rec.Name, rec.Country, rec.Gender}); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// TableReporter renders a rounded table
type TableReporter struct {
	w io.Writer
}

func (r *TableReporter) Report(records []*competition.Record) error {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(r.w)
	t.AppendHeader(table.Row{"#", "Competition", "Country", "Gender"})
	for i, rec := range records {
		t.AppendRow(table.Row{i + 1, rec.Name, rec.Country, rec.Gender})
	}
	t.AppendFooter(table.Row{"", "Total", len(records), ""})
	t.Render()
	return nil
}
