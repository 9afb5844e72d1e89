package etl

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
)

// CSVLoader overwrites Path with the table, prefixed by a zero-based row
// index column whose header is empty. The write is not atomic.
type CSVLoader struct {
	Path string
}

func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{Path: path}
}

func (l *CSVLoader) Load(ctx context.Context, table *models.Table) error {
	if err := loadValidator.ValidateTable(table); err != nil {
		return err
	}

	f, err := os.Create(l.Path)
	if err != nil {
		return fmt.Errorf("create csv '%s': %w", l.Path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := append([]string{""}, models.ColumnCountry, models.ColumnGDPBillions)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, rec := range table.Records {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := []string{strconv.Itoa(i), rec.Country, FormatGDP(rec.GDP)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv '%s': %w", l.Path, err)
	}

	logger.Infof("CSV Loader: wrote %d records to %s", table.Len(), l.Path)
	return f.Close()
}

// ReadCSV loads a file written by CSVLoader back into a table. The index
// column is dropped.
func ReadCSV(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv '%s': %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv '%s': %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("parse csv '%s': empty file", path)
	}

	header := rows[0]
	if len(header) != 3 {
		return nil, fmt.Errorf("parse csv '%s': expected 3 columns, got %d", path, len(header))
	}

	table := models.NewTable(header[1:]...)
	for i, row := range rows[1:] {
		gdp, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse csv '%s' row %d: %w", path, i+1, err)
		}
		table.Append(models.Record{Country: row[1], GDP: gdp})
	}
	return table, nil
}

// FormatGDP renders a GDP value without exponent notation.
func FormatGDP(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
