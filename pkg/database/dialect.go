package database

import (
	"fmt"
	"strconv"
)

// Dialect names a database/sql driver for the server store.
type Dialect string

const (
	SQLServer Dialect = "sqlserver"
	Postgres  Dialect = "postgres"
	MySQL     Dialect = "mysql"
)

func (d Dialect) Valid() bool {
	switch d {
	case SQLServer, Postgres, MySQL:
		return true
	default:
		return false
	}
}

// Placeholder returns the bind marker for the n-th (1-based) parameter.
func (d Dialect) Placeholder(n int) string {
	switch d {
	case SQLServer:
		return "@p" + strconv.Itoa(n)
	case Postgres:
		return "$" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// QuoteIdent quotes a table or column name. Callers must have validated
// name with utils.IsIdentifier.
func (d Dialect) QuoteIdent(name string) string {
	switch d {
	case SQLServer:
		return "[" + name + "]"
	case MySQL:
		return "`" + name + "`"
	default:
		return fmt.Sprintf("%q", name)
	}
}
