package dialect

import (
	"context"
	"fmt"
	"strconv"
)

// Dialect names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier wraps the 2 database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records. For example, in SQL, INSERT or UPDATE.
	// It scans the result into the pointer v. For SQL drivers, it is dialect/sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for alchemy clients.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps the Exec and Query operations in transaction.
type Tx interface {
	ExecQuerier
	// Dialect returns the dialect name of the transaction's driver.
	Dialect() string
	Commit() error
	Rollback() error
}

// Placeholder renders the bound-parameter marker for the i-th (1-based) value of a statement.
type Placeholder interface {
	Placeholder(i int) string
}

// Numbered renders ordinal markers such as $1, $2.
type Numbered struct {
	Prefix string
}

// Placeholder implements the Placeholder interface.
func (n Numbered) Placeholder(i int) string {
	return n.Prefix + strconv.Itoa(i)
}

// Positional renders the same marker for every value.
type Positional struct {
	Marker string
}

// Placeholder implements the Placeholder interface.
func (p Positional) Placeholder(int) string {
	return p.Marker
}

// PlaceholderFor returns the placeholder strategy used by the given dialect.
func PlaceholderFor(name string) (Placeholder, error) {
	switch name {
	case Postgres:
		return Numbered{Prefix: "$"}, nil
	case MySQL, SQLite:
		return Positional{Marker: "?"}, nil
	default:
		return nil, fmt.Errorf("dialect: unsupported dialect %q", name)
	}
}

// Valid reports if name is one of the supported dialects.
func Valid(name string) bool {
	switch name {
	case Postgres, MySQL, SQLite:
		return true
	}
	return false
}
