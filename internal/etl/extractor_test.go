package etl

import (
	"strings"
	"testing"

	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/stretchr/testify/require"
)

func TestExtractSkipsUnlinkedAndPlaceholderRows(t *testing.T) {
	quietLogs(t)

	tbl, err := NewExtractor(wikiLocator).Extract(gdpPage, gdpColumns)
	require.NoError(t, err)
	require.Equal(t, gdpColumns, tbl.Columns)
	require.Equal(t, []models.Record{
		{Country: "United States", RawGDP: "26,854,599"},
		{Country: "Testland", RawGDP: "1,234.5"},
		{Country: "Tuvalu", RawGDP: "63"},
	}, tbl.Records)
}

func TestExtractPlaceholderRowExcluded(t *testing.T) {
	quietLogs(t)

	tbl, err := NewExtractor(wikiLocator).Extract(gdpPage, gdpColumns)
	require.NoError(t, err)
	for _, rec := range tbl.Records {
		require.NotEqual(t, "Nowhere", rec.Country)
	}
}

func TestExtractRowsAreBoundedAndNonEmpty(t *testing.T) {
	quietLogs(t)

	tbl, err := NewExtractor(wikiLocator).Extract(gdpPage, gdpColumns)
	require.NoError(t, err)

	dataRows := 5
	require.LessOrEqual(t, tbl.Len(), dataRows)
	for _, rec := range tbl.Records {
		require.NotEmpty(t, rec.Country)
		require.NotEmpty(t, rec.RawGDP)
	}
}

func TestExtractNoLabeledTable(t *testing.T) {
	quietLogs(t)

	page := `<table class="wikitable"><tr><th>Rank</th></tr><tr><td>1</td></tr></table>`
	_, err := NewExtractor(wikiLocator).Extract(page, gdpColumns)
	require.ErrorIs(t, err, ErrStructureMismatch)

	var structErr *StructureError
	require.ErrorAs(t, err, &structErr)
	require.Contains(t, structErr.Reason, "Country")
}

func TestExtractShortRow(t *testing.T) {
	quietLogs(t)

	page := `<table class="wikitable">
		<tr><th>Country</th><th>GDP</th></tr>
		<tr><td><a href="#">Shortland</a></td><td>12</td></tr>
	</table>`
	_, err := NewExtractor(wikiLocator).Extract(page, gdpColumns)
	require.ErrorIs(t, err, ErrStructureMismatch)
}

func TestExtractSkipsSpanningNoteRow(t *testing.T) {
	quietLogs(t)

	page := `<table class="wikitable">
		<tr><th>Country</th><th>Region</th><th>GDP</th></tr>
		<tr><td colspan="3">Note: figures in millions</td></tr>
		<tr><td><a href="#">Testland</a></td><td>Europe</td><td>1,234.5</td></tr>
		<tr><td colspan="3"><a href="#notes">See notes</a></td></tr>
	</table>`
	_, err := NewExtractor(wikiLocator).Extract(page, gdpColumns)
	require.ErrorIs(t, err, ErrStructureMismatch)

	page = strings.Replace(page, `<td colspan="3"><a href="#notes">See notes</a></td>`, `<td colspan="3">Source: IMF</td>`, 1)
	tbl, err := NewExtractor(wikiLocator).Extract(page, gdpColumns)
	require.NoError(t, err)
	require.Equal(t, []models.Record{{Country: "Testland", RawGDP: "1,234.5"}}, tbl.Records)
}

func TestExtractCountryCellBeyondRow(t *testing.T) {
	quietLogs(t)

	page := `<table class="wikitable">
		<tr><th>Country</th><th>GDP</th></tr>
		<tr><td>footer</td></tr>
		<tr><td>1</td><td><a href="#">Beta</a></td><td>2,000</td></tr>
	</table>`
	locator := wikiLocator
	locator.CountryCell = 1

	tbl, err := NewExtractor(locator).Extract(page, gdpColumns)
	require.NoError(t, err)
	require.Equal(t, []models.Record{{Country: "Beta", RawGDP: "2,000"}}, tbl.Records)
}

func TestExtractCustomLocator(t *testing.T) {
	quietLogs(t)

	page := `<div id="data"><table>
		<tr><th>Nation</th><th>GDP (US$ million)</th></tr>
		<tr><td><a href="#">Alpha</a></td><td>n/a</td></tr>
		<tr><td><a href="#">Beta</a></td><td>2,000</td></tr>
	</table></div>`
	locator := TableLocator{
		Selector:    "#data table",
		HeaderLabel: "nation",
		CountryCell: 0,
		GDPCell:     1,
		Placeholder: "n/a",
	}

	tbl, err := NewExtractor(locator).Extract(page, gdpColumns)
	require.NoError(t, err)
	require.Equal(t, []models.Record{{Country: "Beta", RawGDP: "2,000"}}, tbl.Records)
}

func TestExtractRequiresTwoColumns(t *testing.T) {
	_, err := NewExtractor(wikiLocator).Extract(gdpPage, []string{"Country"})
	require.Error(t, err)
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "1,234.5", cleanText(" 1,234.5[n 1] "))
	require.Equal(t, "Korea, South", cleanText("Korea,\n  South[a][b]"))
	require.Equal(t, "", cleanText(strings.Repeat(" ", 4)))
}
