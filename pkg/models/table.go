package models

import "slices"

// Column names used by the GDP table as it moves through the pipeline.
const (
	ColumnCountry     = "Country"
	ColumnGDPMillions = "GDP_USD_millions"
	ColumnGDPBillions = "GDP_USD_billions"
)

// Record is one country row. RawGDP holds the cell text as scraped and is
// cleared once the value has been converted into GDP.
type Record struct {
	Country string
	RawGDP  string
	GDP     float64
}

// Table is an ordered list of records under a named column schema.
// Row order is the order rows appeared on the source page.
type Table struct {
	Columns []string
	Records []Record
}

func NewTable(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

func (t *Table) Append(r Record) {
	t.Records = append(t.Records, r)
}

func (t *Table) Len() int {
	return len(t.Records)
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// RenameColumn replaces oldName with newName in the schema.
// It reports whether oldName was present.
func (t *Table) RenameColumn(oldName, newName string) bool {
	i := slices.Index(t.Columns, oldName)
	if i < 0 {
		return false
	}
	t.Columns[i] = newName
	return true
}
