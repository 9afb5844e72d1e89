package etl

import (
	"testing"

	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/stretchr/testify/require"
)

func millionsTable(raw ...string) *models.Table {
	tbl := models.NewTable(gdpColumns...)
	for _, r := range raw {
		tbl.Append(models.Record{Country: "Testland", RawGDP: r})
	}
	return tbl
}

func TestTransformTestland(t *testing.T) {
	tbl := millionsTable("1,234.5")

	require.NoError(t, NewTransformer().Transform(tbl))
	require.Equal(t, []string{models.ColumnCountry, models.ColumnGDPBillions}, tbl.Columns)
	require.Equal(t, []models.Record{{Country: "Testland", GDP: 1.23}}, tbl.Records)
}

func TestTransformValues(t *testing.T) {
	tbl := millionsTable("26,854,599", "63", "0", "125")

	require.NoError(t, NewTransformer().Transform(tbl))

	got := make([]float64, 0, tbl.Len())
	for _, rec := range tbl.Records {
		got = append(got, rec.GDP)
	}
	require.Equal(t, []float64{26854.6, 0.06, 0, 0.12}, got)
}

func TestTransformIsDeterministic(t *testing.T) {
	a := millionsTable("1,234.5", "987,654.321")
	b := millionsTable("1,234.5", "987,654.321")

	require.NoError(t, NewTransformer().Transform(a))
	require.NoError(t, NewTransformer().Transform(b))
	require.Equal(t, a, b)
}

// Re-running the unit step on already converted values silently corrupts
// them; re-running Transform on its own output is refused.
func TestTransformTwiceIsNotIdempotent(t *testing.T) {
	once := ScaleToBillions(1234.5)
	require.Equal(t, 1.23, once)
	require.NotEqual(t, once, ScaleToBillions(once))
	require.Equal(t, 0.0, ScaleToBillions(once))

	tbl := millionsTable("1,234.5")
	require.NoError(t, NewTransformer().Transform(tbl))
	err := NewTransformer().Transform(tbl)
	require.ErrorIs(t, err, ErrMissingColumn)
	require.Equal(t, 1.23, tbl.Records[0].GDP)
}

func TestTransformRejectsBadValues(t *testing.T) {
	for _, raw := range []string{"n/a", "", "-5", "1,2,3.4.5"} {
		err := NewTransformer().Transform(millionsTable(raw))

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr, raw)
		require.Equal(t, "Testland", parseErr.Country)
	}
}

func TestTransformRejectsInfinity(t *testing.T) {
	err := NewTransformer().Transform(millionsTable("Inf"))

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestTransformFailureLeavesTableUnchanged(t *testing.T) {
	tbl := millionsTable("1,234.5", "26,854,599", "n/a")
	before := millionsTable("1,234.5", "26,854,599", "n/a")

	var parseErr *ParseError
	require.ErrorAs(t, NewTransformer().Transform(tbl), &parseErr)
	require.Equal(t, "n/a", parseErr.Value)
	require.Equal(t, before, tbl)
}
