package scraper

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fbref-comps/internal/competition"
	"github.com/pfrederiksen/fbref-comps/internal/logger"
	"golang.org/x/net/html"
)

// headerRowClass marks the column-header rows FBref repeats inside tbody
const headerRowClass = "thead"

// ParseCompetitions extracts competition records from the table with the
// given id. Records keep document order. A missing table or tbody yields an
// empty slice and no error; rows without a heading cell are skipped.
func ParseCompetitions(r io.Reader, tableID string) ([]*competition.Record, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	records := make([]*competition.Record, 0)

	table := findTable(doc, tableID)
	if table.Length() == 0 {
		logger.Debug("competitions table not found", logger.Fields{"table": tableID})
		return records, nil
	}

	table.Find("tbody").First().ChildrenFiltered("tr").Each(func(i int, row *goquery.Selection) {
		if row.HasClass(headerRowClass) {
			logger.Debug("skipping repeated header row", logger.Fields{"row": i})
			return
		}

		th := row.Find("th").First()
		if th.Length() == 0 {
			logger.Warn("skipping row without competition name", logger.Fields{
				"table": tableID,
				"row":   i,
			})
			logger.IncrCounter("rows.skipped")
			return
		}

		// an empty cell stays empty; only a missing one is N/A
		country := competition.NotAvailable
		if td := row.Find("td").First(); td.Length() > 0 {
			country = cellText(td)
		}

		records = append(records, competition.New(cellText(th), country, rowGender(row)))
	})

	logger.AddCounter("records.extracted", int64(len(records)))
	return records, nil
}

// findTable returns the first table whose id equals tableID. Matching on
// the attribute keeps ids with selector metacharacters working.
func findTable(doc *goquery.Document, tableID string) *goquery.Selection {
	return doc.Find("table").FilterFunction(func(_ int, s *goquery.Selection) bool {
		id, ok := s.Attr("id")
		return ok && id == tableID
	}).First()
}

func rowGender(row *goquery.Selection) string {
	switch {
	case row.HasClass("gender-m"):
		return competition.GenderMen
	case row.HasClass("gender-f"):
		return competition.GenderWomen
	}
	return ""
}

var innerWhitespace = regexp.MustCompile(`\s\s+`)

// cellText returns the visible text of a cell with non-printable runes
// dropped and whitespace runs collapsed.
func cellText(sel *goquery.Selection) string {
	var buf bytes.Buffer
	for _, n := range sel.Nodes {
		nodeText(n, &buf)
	}

	var b strings.Builder
	for _, c := range buf.String() {
		switch {
		case unicode.IsSpace(c):
			b.WriteRune(' ')
		case unicode.IsPrint(c):
			b.WriteRune(c)
		}
	}

	return strings.TrimSpace(innerWhitespace.ReplaceAllString(b.String(), " "))
}

func nodeText(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		nodeText(child, buf)
	}
}
