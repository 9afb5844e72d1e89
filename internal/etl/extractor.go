package etl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/PuerkitoBio/goquery"
)

// TableLocator says which table on the page holds the data and which cells
// of each row to read.
type TableLocator struct {
	// Selector picks candidate tables, e.g. "table.wikitable".
	Selector string
	// HeaderLabel must appear (case-insensitively) in one of the table's
	// header cells for the table to be chosen.
	HeaderLabel string
	CountryCell int
	GDPCell     int
	// Placeholder is the glyph the page uses for "no data".
	Placeholder string
}

var footnoteRegex = regexp.MustCompile(`\[[^\]]*\]`)

type Extractor struct {
	Locator TableLocator
}

func NewExtractor(locator TableLocator) *Extractor {
	return &Extractor{Locator: locator}
}

// Extract parses markup into a table with the given two column names
// (country, gdp). Rows without a linked country, and rows whose GDP cell
// holds the placeholder, are skipped. A linked row too short to hold the GDP
// cell is a structure mismatch.
func (e *Extractor) Extract(markup string, columns []string) (*models.Table, error) {
	if len(columns) != 2 {
		return nil, fmt.Errorf("expected 2 column names (country, gdp), got %d", len(columns))
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse markup: %w", err)
	}

	tbl := e.locate(doc)
	if tbl == nil {
		return nil, &StructureError{
			Reason: fmt.Sprintf("no %q table with a header containing %q", e.Locator.Selector, e.Locator.HeaderLabel),
		}
	}

	out := models.NewTable(columns...)
	need := max(e.Locator.CountryCell, e.Locator.GDPCell) + 1

	var structErr error
	skipped := 0
	tbl.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return true
		}
		if e.Locator.CountryCell >= cells.Length() {
			skipped++
			return true
		}
		link := cells.Eq(e.Locator.CountryCell).Find("a").First()
		if link.Length() == 0 {
			skipped++
			return true
		}
		// A linked country row must reach the GDP cell.
		if cells.Length() < need {
			structErr = &StructureError{
				Reason: fmt.Sprintf("row %d has %d cells, need %d", i, cells.Length(), need),
			}
			return false
		}
		gdpCell := cells.Eq(e.Locator.GDPCell)
		if e.Locator.Placeholder != "" && strings.Contains(gdpCell.Text(), e.Locator.Placeholder) {
			skipped++
			return true
		}

		country := cleanText(link.Text())
		gdp := cleanText(gdpCell.Text())
		if country == "" || gdp == "" {
			skipped++
			return true
		}

		out.Append(models.Record{Country: country, RawGDP: gdp})
		return true
	})
	if structErr != nil {
		return nil, structErr
	}

	logger.Debugf("Extracted %d rows, skipped %d", out.Len(), skipped)
	return out, nil
}

// locate returns the first candidate table whose header mentions the label.
func (e *Extractor) locate(doc *goquery.Document) *goquery.Selection {
	label := strings.ToLower(e.Locator.HeaderLabel)
	var found *goquery.Selection
	doc.Find(e.Locator.Selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		s.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if strings.Contains(strings.ToLower(th.Text()), label) {
				found = s
				return false
			}
			return true
		})
		return found == nil
	})
	return found
}

func cleanText(s string) string {
	s = footnoteRegex.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
