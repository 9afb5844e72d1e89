package etl

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/BartekS5/gdpetl/pkg/database"
	"github.com/BartekS5/gdpetl/pkg/logger"
	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/BartekS5/gdpetl/pkg/utils"
)

// ServerLoader inserts rows one by one into a table that already exists on
// a SQL server, committing once after the full pass. It does not create or
// clear the table.
type ServerLoader struct {
	DB      *sql.DB
	Dialect database.Dialect
	Table   string
}

func NewServerLoader(db *sql.DB, dialect database.Dialect, table string) *ServerLoader {
	return &ServerLoader{DB: db, Dialect: dialect, Table: table}
}

func (l *ServerLoader) Load(ctx context.Context, table *models.Table) error {
	if err := loadValidator.ValidateTable(table); err != nil {
		return err
	}
	if !utils.IsIdentifier(l.Table) {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, l.Table)
	}

	logger.Infof("Server Loader: Processing %d records...", table.Len())

	tx, err := l.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin %s transaction: %w", l.Dialect, err)
	}
	// Uncommitted inserts are discarded if the loop fails part way.
	defer tx.Rollback()

	query := l.insertQuery()
	for i, rec := range table.Records {
		if _, err := tx.ExecContext(ctx, query, rec.Country, rec.GDP); err != nil {
			return fmt.Errorf("insert row %d (%s): %w", i, rec.Country, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s transaction: %w", l.Dialect, err)
	}

	logger.Infof("Server Loader: inserted %d records into %s", table.Len(), l.Table)
	return nil
}

// Close releases the server connection. The pipeline calls it straight
// after the write; calling it again is harmless.
func (l *ServerLoader) Close() error {
	return l.DB.Close()
}

func (l *ServerLoader) insertQuery() string {
	return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (%s, %s)",
		l.Dialect.QuoteIdent(l.Table),
		l.Dialect.QuoteIdent(models.ColumnCountry),
		l.Dialect.QuoteIdent(models.ColumnGDPBillions),
		l.Dialect.Placeholder(1),
		l.Dialect.Placeholder(2),
	)
}
