package schema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/alchemy/dialect/sql"
	"github.com/syssam/alchemy/schema/field"
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err joins the validation errors, or returns nil if there are none.
func (r *ValidationResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) errorf(table, column, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(table, column, format string, args ...any) {
	r.Warnings = append(r.Warnings, &ValidationError{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

// ValidateTable validates a single table definition.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}
	if !sql.ValidIdentifier(t.Name) {
		result.errorf(t.Name, "", "invalid table name %q", t.Name)
	}

	var pks int
	colNames := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if f.Err != nil {
			result.errorf(t.Name, f.Name, "%v", f.Err)
		}
		if !sql.ValidIdentifier(f.Name) {
			result.errorf(t.Name, f.Name, "invalid column name")
		}
		if colNames[f.Name] {
			result.errorf(t.Name, f.Name, "duplicate column name")
		}
		colNames[f.Name] = true

		if f.PrimaryKey {
			pks++
			if f.Nillable {
				result.warnf(t.Name, f.Name, "primary key cannot be NULL, nillable is ignored")
			}
		}
		if f.Auto && !f.PrimaryKey {
			result.errorf(t.Name, f.Name, "auto-increment is only supported on the primary key")
		}
		if f.Unique && f.Type == field.TypeText {
			result.warnf(t.Name, f.Name, "UNIQUE on a TEXT column is rejected by MySQL, use a sized string")
		}
		if ref := f.Reference; ref != nil && (!sql.ValidIdentifier(ref.Table) || !sql.ValidIdentifier(ref.Column)) {
			result.errorf(t.Name, f.Name, "invalid foreign key reference %s.%s", ref.Table, ref.Column)
		}
	}

	switch {
	case pks == 0:
		result.errorf(t.Name, "", "table has no primary key")
	case pks > 1:
		result.errorf(t.Name, "", "table has %d primary keys, composite keys are not supported", pks)
	}
	return result
}

// ValidateSchema validates all tables in a schema and the foreign keys
// between them.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}

	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		if _, ok := byName[t.Name]; ok {
			result.errorf(t.Name, "", "duplicate table name")
		}
		byName[t.Name] = t

		tableResult := ValidateTable(t)
		result.Errors = append(result.Errors, tableResult.Errors...)
		result.Warnings = append(result.Warnings, tableResult.Warnings...)
	}

	for _, t := range tables {
		for _, f := range t.Fields {
			ref := f.Reference
			if ref == nil {
				continue
			}
			target, ok := byName[ref.Table]
			if !ok {
				result.errorf(t.Name, f.Name, "foreign key references non-existent table %q", ref.Table)
				continue
			}
			if _, ok := target.Column(ref.Column); !ok {
				result.errorf(t.Name, f.Name, "foreign key references non-existent column %s.%s", ref.Table, ref.Column)
			}
		}
	}
	return result
}

// Sort orders tables so that every table follows the tables its foreign keys
// reference. Tables referencing unknown tables keep their relative order.
func Sort(tables []*Table) ([]*Table, error) {
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(tables))
	sorted := make([]*Table, 0, len(tables))
	var visit func(t *Table) error
	visit = func(t *Table) error {
		switch state[t.Name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("schema: foreign key cycle through table %q", t.Name)
		}
		state[t.Name] = visiting
		for _, f := range t.Fields {
			if f.Reference == nil || f.Reference.Table == t.Name {
				continue
			}
			if dep, ok := byName[f.Reference.Table]; ok {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		state[t.Name] = done
		sorted = append(sorted, t)
		return nil
	}
	for _, t := range tables {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
