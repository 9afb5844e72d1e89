package etl

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/BartekS5/gdpetl/pkg/models"
	"github.com/BartekS5/gdpetl/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
)

type QueryResult struct {
	Statement string
	Args      []interface{}
	Columns   []string
	Rows      [][]interface{}
}

// Render prints the result set as a table.
func (r *QueryResult) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	header := make(table.Row, len(r.Columns))
	for i, c := range r.Columns {
		header[i] = c
	}
	t.AppendHeader(header)

	for _, row := range r.Rows {
		t.AppendRow(table.Row(row))
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(r.Rows))})

	t.SetStyle(table.StyleRounded)
	t.Render()
}

// Query runs statement and reads the whole result set into memory.
func Query(ctx context.Context, db *sql.DB, statement string, args ...interface{}) (*QueryResult, error) {
	rows, err := db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	result := &QueryResult{Statement: statement, Args: args, Columns: cols}
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			values[i] = utils.NormalizeValue(v)
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return result, nil
}

// ThresholdStatement selects every row at or above a bound GDP threshold.
func ThresholdStatement(tableName string) (string, error) {
	if !utils.IsIdentifier(tableName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, tableName)
	}
	return fmt.Sprintf("SELECT * FROM %q WHERE %q >= ?", tableName, models.ColumnGDPBillions), nil
}

// QueryRunner executes summary queries against the embedded store and
// echoes the statement and its result to Out.
type QueryRunner struct {
	DB  *sql.DB
	Out io.Writer
}

func NewQueryRunner(db *sql.DB, out io.Writer) *QueryRunner {
	return &QueryRunner{DB: db, Out: out}
}

func (q *QueryRunner) RunThreshold(ctx context.Context, tableName string, threshold float64) (*QueryResult, error) {
	statement, err := ThresholdStatement(tableName)
	if err != nil {
		return nil, err
	}
	return q.Run(ctx, statement, threshold)
}

func (q *QueryRunner) Run(ctx context.Context, statement string, args ...interface{}) (*QueryResult, error) {
	if q.Out != nil {
		fmt.Fprintln(q.Out, statement)
		if len(args) > 0 {
			fmt.Fprintf(q.Out, "-- args: %v\n", args)
		}
	}

	result, err := Query(ctx, q.DB, statement, args...)
	if err != nil {
		return nil, err
	}
	if q.Out != nil {
		result.Render(q.Out)
	}
	return result, nil
}
