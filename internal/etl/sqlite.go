package etl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/BartekS5/gdpetl/pkg/utils"
)

// SQLiteLoader writes the table into the embedded store with replace
// semantics: the named table is dropped, recreated and filled.
type SQLiteLoader struct {
	DB    *sql.DB
	Table string
}

func NewSQLiteLoader(db *sql.DB, table string) *SQLiteLoader {
	return &SQLiteLoader{DB: db, Table: table}
}

func (l *SQLiteLoader) Load(ctx context.Context, table *models.Table) error {
	if err := loadValidator.ValidateTable(table); err != nil {
		return err
	}
	if !utils.IsIdentifier(l.Table) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, l.Table)
	}

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sqlite transaction: %w", err)
	}
	defer tx.Rollback()

	name := fmt.Sprintf("%q", l.Table)
	stmts := []string{
		fmt.Sprintf("DROP TABLE IF EXISTS %s", name),
		fmt.Sprintf("CREATE TABLE %s (%q TEXT, %q REAL)", name, models.ColumnCountry, models.ColumnGDPBillions),
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("replace table %s: %w", l.Table, err)
		}
	}

	insert, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%q, %q) VALUES (?, ?)", name, models.ColumnCountry, models.ColumnGDPBillions,
	))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	for i, rec := range table.Records {
		if _, err := insert.ExecContext(ctx, rec.Country, rec.GDP); err != nil {
			return fmt.Errorf("insert row %d (%s): %w", i, rec.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit sqlite transaction: %w", err)
	}

	logger.Infof("SQLite Loader: replaced table %s with %d records", l.Table, table.Len())
	return nil
}
