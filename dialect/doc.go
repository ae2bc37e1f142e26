// Package dialect provides database dialect abstraction for alchemy.
//
// This package defines the interfaces and types used for database-specific
// operations, allowing alchemy to support multiple database backends including
// PostgreSQL, MySQL, and SQLite.
//
// # Supported Dialects
//
// Each dialect is identified by a constant string:
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// # Placeholders
//
// Dialects differ in how bound parameters are marked in statement text.
// PostgreSQL requires ordinal markers, MySQL and SQLite use a single
// positional marker:
//
//	ph, _ := dialect.PlaceholderFor(dialect.Postgres)
//	ph.Placeholder(2) // "$2"
//
//	ph, _ = dialect.PlaceholderFor(dialect.SQLite)
//	ph.Placeholder(2) // "?"
//
// The strategy is chosen once, when a builder or client is constructed.
//
// # Driver Interface
//
// The package defines the Driver interface for database operations:
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Transaction Interface
//
// The Tx interface wraps the same operations with Commit and Rollback.
// A client built over a Tx runs all of its statements inside it:
//
//	tx, err := drv.Tx(ctx)
//	if err != nil {
//	    return err
//	}
//	client := alchemy.NewClient(tx)
//
// # Usage
//
// Opening a database connection:
//
//	import (
//	    "github.com/syssam/alchemy/dialect"
//	    "github.com/syssam/alchemy/dialect/sql"
//	)
//
//	db, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// # Sub-packages
//
//   - dialect/sql: statement builder, value binder and driver implementation
package dialect
