package schema

import (
	"fmt"
	"reflect"

	"github.com/go-openapi/inflect"

	"github.com/syssam/alchemy/dialect"
	"github.com/syssam/alchemy/dialect/sql"
	"github.com/syssam/alchemy/schema/field"
)

// Table is the declared layout of an entity table.
type Table struct {
	Name    string
	Fields  []*field.Descriptor
	Comment string
}

// New returns a table with the given name and fields.
func New(name string, fields ...*field.Builder) *Table {
	t := &Table{Name: name, Fields: make([]*field.Descriptor, 0, len(fields))}
	for _, f := range fields {
		t.Fields = append(t.Fields, f.Descriptor())
	}
	return t
}

// For returns a table named after the Go type of v.
//
//	schema.For(User{}, ...) // table "user"
func For(v any, fields ...*field.Builder) *Table {
	return New(TableName(v), fields...)
}

// TableName returns the snake_case table name of a Go type, or of a
// CamelCase string.
func TableName(v any) string {
	if s, ok := v.(string); ok {
		return inflect.Underscore(s)
	}
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	return inflect.Underscore(t.Name())
}

// PrimaryKey returns the primary-key field, or nil if none is declared.
func (t *Table) PrimaryKey() *field.Descriptor {
	for _, f := range t.Fields {
		if f.PrimaryKey {
			return f
		}
	}
	return nil
}

// Column returns the field with the given name.
func (t *Table) Column(name string) (*field.Descriptor, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Descriptor validates the table and returns its descriptor with the DDL of
// every supported dialect. The SQLite statement is the default schema.
func (t *Table) Descriptor() (*sql.Descriptor, error) {
	if r := ValidateTable(t); r.HasErrors() {
		return nil, r.Err()
	}
	d := &sql.Descriptor{
		Name:       t.Name,
		PrimaryKey: t.PrimaryKey().Name,
		Dialects:   make(map[string]string, 3),
	}
	d.AutoIncrement = t.PrimaryKey().Auto
	for _, name := range []string{dialect.Postgres, dialect.MySQL, dialect.SQLite} {
		d.Dialects[name] = createTable(name, t)
	}
	d.Schema = d.Dialects[dialect.SQLite]
	return d, nil
}

// MustDescriptor is like Descriptor but panics on error. It is intended for
// package-level entity declarations.
func (t *Table) MustDescriptor() *sql.Descriptor {
	d, err := t.Descriptor()
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return d
}

// DDL returns the CREATE TABLE statement of the table for the named dialect.
func (t *Table) DDL(name string) (string, error) {
	if !dialect.Valid(name) {
		return "", fmt.Errorf("schema: unsupported dialect %q", name)
	}
	if r := ValidateTable(t); r.HasErrors() {
		return "", r.Err()
	}
	return createTable(name, t), nil
}
