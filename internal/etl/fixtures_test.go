package etl

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/BartekS5/gdpetl/pkg/database"
	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/stretchr/testify/require"
)

const gdpPage = `<html><body>
<table class="wikitable">
  <tr><th>Rank</th><th>Notes</th></tr>
  <tr><td>1</td><td>unrelated</td></tr>
</table>
<table class="wikitable sortable">
  <tbody>
    <tr><th>Country/Territory</th><th>UN region</th><th>IMF estimate</th></tr>
    <tr><td>World</td><td>—</td><td>105,568,776</td></tr>
    <tr><td><img src="flag.png"> <a href="/wiki/United_States">United States</a></td><td>Americas</td><td>26,854,599</td></tr>
    <tr><td><a href="/wiki/Testland">Testland</a></td><td>Europe</td><td>1,234.5<sup>[n 1]</sup></td></tr>
    <tr><td><a href="/wiki/Nowhere">Nowhere</a></td><td>Asia</td><td>—</td></tr>
    <tr><td><a href="/wiki/Tuvalu">Tuvalu</a></td><td>Oceania</td><td>63</td></tr>
  </tbody>
</table>
</body></html>`

var gdpColumns = []string{models.ColumnCountry, models.ColumnGDPMillions}

var wikiLocator = TableLocator{
	Selector:    "table.wikitable",
	HeaderLabel: "Country",
	CountryCell: 0,
	GDPCell:     2,
	Placeholder: "—",
}

type fakeFetcher struct {
	markup string
	err    error
	urls   []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.urls = append(f.urls, url)
	return f.markup, f.err
}

func quietLogs(t *testing.T) {
	t.Helper()
	logger.SetOutput(io.Discard)
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	quietLogs(t)
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func billionsTable(rows map[string]float64, order ...string) *models.Table {
	tbl := models.NewTable(models.ColumnCountry, models.ColumnGDPBillions)
	for _, country := range order {
		tbl.Append(models.Record{Country: country, GDP: rows[country]})
	}
	return tbl
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}
