package etl

import (
	"math"

	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/BartekS5/gdpetl/pkg/utils"
)

type Transformer struct {
	Validator *Validator
}

func NewTransformer() *Transformer {
	return &Transformer{
		Validator: NewValidator(models.ColumnCountry, models.ColumnGDPMillions),
	}
}

// Transform converts every GDP cell from comma-grouped millions of USD to
// billions rounded to two places, then renames the GDP column. The table is
// modified in place only when every row converts. A table that was already
// transformed no longer has the millions column and is rejected.
func (t *Transformer) Transform(table *models.Table) error {
	if err := t.Validator.ValidateTable(table); err != nil {
		return err
	}

	// Convert into a scratch slice so a bad row leaves the table untouched.
	billions := make([]float64, len(table.Records))
	for i, rec := range table.Records {
		millions, err := utils.ParseGroupedFloat(rec.RawGDP)
		if err != nil {
			return &ParseError{Country: rec.Country, Value: rec.RawGDP, Err: err}
		}
		if math.IsNaN(millions) || math.IsInf(millions, 0) || millions < 0 {
			return &ParseError{Country: rec.Country, Value: rec.RawGDP}
		}
		billions[i] = ScaleToBillions(millions)
	}

	for i := range table.Records {
		table.Records[i].GDP = billions[i]
		table.Records[i].RawGDP = ""
	}
	table.RenameColumn(models.ColumnGDPMillions, models.ColumnGDPBillions)
	return nil
}

// ScaleToBillions is the unit step of Transform. Applying it to its own
// output divides by 1000 again, so it is not idempotent.
func ScaleToBillions(millions float64) float64 {
	return utils.RoundHalfEven(millions/1000, 2)
}
