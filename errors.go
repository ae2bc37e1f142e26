package alchemy

import (
	"errors"
	"fmt"

	"github.com/syssam/alchemy/dialect/sql"
)

// ErrEmptyKwargs is returned when an insert, update or filter receives no arguments.
var ErrEmptyKwargs = sql.ErrEmptyKwargs

// ErrNoPrimaryKey is returned when a statement keyed by the primary key is
// built for an entity without a valid primary key.
var ErrNoPrimaryKey = sql.ErrNoPrimaryKey

type (
	// BindConversionError is returned when a value cannot be converted to its
	// declared type before binding.
	BindConversionError = sql.BindConversionError
	// DeserializationError is returned when a row cannot be converted to an entity.
	DeserializationError = sql.DeserializationError
	// InvalidKeyError is returned for keys that are not valid identifiers.
	InvalidKeyError = sql.InvalidKeyError
	// ValueTypeError is returned for argument values of an unsupported Go type.
	ValueTypeError = sql.ValueTypeError
)

// SchemaExecutionError is returned when the DDL of an entity fails.
type SchemaExecutionError struct {
	Entity string
	Err    error
}

// Error returns the error string.
func (e *SchemaExecutionError) Error() string {
	return fmt.Sprintf("alchemy: migrate %s: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaExecutionError) Unwrap() error {
	return e.Err
}

// IsSchemaExecutionError returns true if the error is a SchemaExecutionError.
func IsSchemaExecutionError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaExecutionError
	return errors.As(err, &e)
}

// StatementExecutionError is returned when the backend rejects or fails a
// statement.
type StatementExecutionError struct {
	Entity string // Entity table name
	Op     string // Operation (e.g., "create", "filter", "count")
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *StatementExecutionError) Error() string {
	return fmt.Sprintf("alchemy: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *StatementExecutionError) Unwrap() error {
	return e.Err
}

// IsStatementExecutionError returns true if the error is a StatementExecutionError.
func IsStatementExecutionError(err error) bool {
	if err == nil {
		return false
	}
	var e *StatementExecutionError
	return errors.As(err, &e)
}

// IsBindConversionError returns true if the error is a BindConversionError.
func IsBindConversionError(err error) bool { return sql.IsBindConversionError(err) }

// IsDeserializationError returns true if the error is a DeserializationError.
func IsDeserializationError(err error) bool { return sql.IsDeserializationError(err) }

// IsConstraintError returns true if the error is a constraint violation
// reported by any supported backend.
func IsConstraintError(err error) bool { return sql.IsConstraintError(err) }

// IsUniqueConstraintError returns true if the error is a unique violation.
func IsUniqueConstraintError(err error) bool { return sql.IsUniqueConstraintError(err) }

// IsForeignKeyConstraintError returns true if the error is a foreign-key violation.
func IsForeignKeyConstraintError(err error) bool { return sql.IsForeignKeyConstraintError(err) }
