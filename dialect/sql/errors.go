package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"modernc.org/sqlite"
)

// ErrEmptyKwargs is returned when a statement that needs at least one argument
// (insert, update, filter) is built from an empty Kwargs.
var ErrEmptyKwargs = errors.New("dialect/sql: empty kwargs")

// ErrNoPrimaryKey is returned when a statement keyed by the primary key is
// built from a descriptor whose PrimaryKey is not a valid identifier.
var ErrNoPrimaryKey = errors.New("dialect/sql: descriptor has no valid primary key")

// InvalidKeyError is returned when an argument key is not a usable identifier.
type InvalidKeyError struct {
	Key string
	Err error // Optional: underlying cause
}

// Error returns the error string.
func (e *InvalidKeyError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dialect/sql: invalid argument %q: %v", e.Key, e.Err)
	}
	return fmt.Sprintf("dialect/sql: invalid argument key %q", e.Key)
}

// Unwrap returns the underlying error.
func (e *InvalidKeyError) Unwrap() error { return e.Err }

// ValueTypeError is returned when a Go value has no Value representation.
type ValueTypeError struct {
	Key  string // empty when returned by ValueOf
	Type string // Go type of the rejected value
}

// Error returns the error string.
func (e *ValueTypeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("dialect/sql: unsupported value type %s", e.Type)
	}
	return fmt.Sprintf("dialect/sql: argument %q: unsupported value type %s", e.Key, e.Type)
}

// IsValueTypeError returns true if the error is a ValueTypeError.
func IsValueTypeError(err error) bool {
	var e *ValueTypeError
	return errors.As(err, &e)
}

// BindConversionError is returned when a value cannot be converted to its declared type.
type BindConversionError struct {
	Key   string
	Type  Type
	Value string
	Err   error
}

// Error returns the error string.
func (e *BindConversionError) Error() string {
	return fmt.Sprintf("dialect/sql: bind %q: cannot convert %q to %s: %v", e.Key, e.Value, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *BindConversionError) Unwrap() error { return e.Err }

// IsBindConversionError returns true if the error is a BindConversionError.
func IsBindConversionError(err error) bool {
	var e *BindConversionError
	return errors.As(err, &e)
}

// DeserializationError is returned when a result row cannot be converted to an entity.
type DeserializationError struct {
	Column string
	Err    error
}

// Error returns the error string.
func (e *DeserializationError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("dialect/sql: deserialize row: %v", e.Err)
	}
	return fmt.Sprintf("dialect/sql: column %q: %v", e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *DeserializationError) Unwrap() error { return e.Err }

// IsDeserializationError returns true if the error is a DeserializationError.
func IsDeserializationError(err error) bool {
	var e *DeserializationError
	return errors.As(err, &e)
}

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

// SQLite extended result codes for constraint violations.
const (
	sqliteConstraintCheck      = 275
	sqliteConstraintForeignKey = 787
	sqliteConstraintPrimaryKey = 1555
	sqliteConstraintUnique     = 2067
)

// IsConstraintError returns true if the error resulted from a database constraint violation.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness constraint violation.
// e.g. duplicate value in unique index.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if ok, known := classify(err, pgUniqueViolation, []uint16{mysqlDuplicateEntry},
		sqliteConstraintUnique, sqliteConstraintPrimaryKey); known {
		return ok
	}
	return containsAny(err.Error(),
		"Error 1062",                 // MySQL (string fallback)
		"violates unique constraint", // Postgres (string fallback)
		"UNIQUE constraint failed",   // SQLite
	)
}

// IsForeignKeyConstraintError reports if the error resulted from a database foreign-key constraint violation.
// e.g. parent row does not exist.
func IsForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if ok, known := classify(err, pgForeignKeyViolation, []uint16{mysqlForeignKeyParent, mysqlForeignKeyChild},
		sqliteConstraintForeignKey); known {
		return ok
	}
	return containsAny(err.Error(),
		"Error 1451",                      // MySQL (Cannot delete or update a parent row)
		"Error 1452",                      // MySQL (Cannot add or update a child row)
		"violates foreign key constraint", // Postgres
		"FOREIGN KEY constraint failed",   // SQLite
	)
}

// IsCheckConstraintError reports if the error resulted from a database check constraint violation.
func IsCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if ok, known := classify(err, pgCheckViolation, []uint16{mysqlCheckConstraintViolate},
		sqliteConstraintCheck); known {
		return ok
	}
	return containsAny(err.Error(),
		"Error 3819",                // MySQL
		"violates check constraint", // Postgres
		"CHECK constraint failed",   // SQLite
	)
}

// ConstraintKind returns a short name of the violated constraint, or "" if err
// is not a constraint violation.
func ConstraintKind(err error) string {
	switch {
	case IsUniqueConstraintError(err):
		return "unique"
	case IsForeignKeyConstraintError(err):
		return "foreign_key"
	case IsCheckConstraintError(err):
		return "check"
	default:
		return ""
	}
}

// classify matches err against the typed errors of the supported drivers.
// known is false when the error could not be decided by its code.
func classify(err error, pgCode string, mysqlNums []uint16, sqliteCodes ...int) (ok, known bool) {
	var pe *pq.Error
	if errors.As(err, &pe) {
		return string(pe.Code) == pgCode, true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		for _, n := range mysqlNums {
			if me.Number == n {
				return true, true
			}
		}
		return false, true
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		for _, c := range sqliteCodes {
			if se.Code() == c {
				return true, true
			}
		}
	}
	// Primary result codes of SQLite are checked by message.
	return false, false
}

// containsAny returns true if s contains any of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
