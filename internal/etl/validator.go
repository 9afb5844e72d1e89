package etl

import (
	"fmt"

	"github.com/BartekS5/gdpetl/pkg/models"
)

type Validator struct {
	Required []string
}

func NewValidator(required ...string) *Validator {
	return &Validator{Required: required}
}

// ValidateTable checks that every required column is present. Values are
// not inspected.
func (v *Validator) ValidateTable(table *models.Table) error {
	if table == nil {
		return fmt.Errorf("nil table")
	}
	for _, col := range v.Required {
		if !table.HasColumn(col) {
			return fmt.Errorf("%w: %s (have %v)", ErrMissingColumn, col, table.Columns)
		}
	}
	return nil
}

// loadValidator guards every sink: loaders only accept transformed tables.
var loadValidator = NewValidator(models.ColumnCountry, models.ColumnGDPBillions)
