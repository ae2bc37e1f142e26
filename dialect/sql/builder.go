package sql

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/alchemy/dialect"
)

// Descriptor holds the static table metadata of an entity.
type Descriptor struct {
	// Name is the table name.
	Name string
	// PrimaryKey is the primary-key column.
	PrimaryKey string
	// Schema is the DDL statement creating the table.
	Schema string
	// AutoIncrement reports if the backend assigns the primary key on insert.
	AutoIncrement bool
	// Dialects optionally overrides Schema per dialect name.
	Dialects map[string]string
}

// DDL returns the schema statement for the given dialect.
func (d *Descriptor) DDL(name string) string {
	if s, ok := d.Dialects[name]; ok {
		return s
	}
	return d.Schema
}

// Statement is the SQL text of a single statement and the arguments
// to bind, in placeholder order.
type Statement struct {
	Query string
	Args  []Arg
}

// Builder assembles statements for one dialect. It holds no mutable state
// and is safe for concurrent use.
type Builder struct {
	dialect string
	ph      dialect.Placeholder
}

// NewBuilder returns a Builder rendering placeholders with ph.
func NewBuilder(name string, ph dialect.Placeholder) *Builder {
	return &Builder{dialect: name, ph: ph}
}

// Dialect returns a Builder for the named dialect.
func Dialect(name string) (*Builder, error) {
	ph, err := dialect.PlaceholderFor(name)
	if err != nil {
		return nil, err
	}
	return NewBuilder(name, ph), nil
}

// Name returns the dialect name of the builder.
func (b *Builder) Name() string { return b.dialect }

var errNoDescriptor = errors.New("dialect/sql: missing table descriptor")

// CreateTable returns the descriptor DDL unmodified.
func (b *Builder) CreateTable(d *Descriptor) (*Statement, error) {
	if d == nil || d.DDL(b.dialect) == "" {
		return nil, errNoDescriptor
	}
	return &Statement{Query: d.DDL(b.dialect)}, nil
}

// Insert returns INSERT INTO <name> (<keys>) VALUES (<placeholders>).
func (b *Builder) Insert(d *Descriptor, kw *Kwargs) (*Statement, error) {
	if err := b.check(d, kw); err != nil {
		return nil, err
	}
	columns := make([]string, len(kw.Args))
	marks := make([]string, len(kw.Args))
	for i, a := range kw.Args {
		columns[i] = a.Key
		marks[i] = b.ph.Placeholder(i + 1)
	}
	return &Statement{
		Query: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", d.Name, strings.Join(columns, ", "), strings.Join(marks, ", ")),
		Args:  slices.Clone(kw.Args),
	}, nil
}

// Update returns UPDATE <name> SET <key> = <p>, ... WHERE <pk> = <p>.
// The operator of kw is ignored and the primary key is bound last.
func (b *Builder) Update(d *Descriptor, id Value, kw *Kwargs) (*Statement, error) {
	if err := b.check(d, kw); err != nil {
		return nil, err
	}
	if !isValidIdentifier(d.PrimaryKey) {
		return nil, ErrNoPrimaryKey
	}
	sets := make([]string, len(kw.Args))
	for i, a := range kw.Args {
		sets[i] = a.Key + " = " + b.ph.Placeholder(i+1)
	}
	args := make([]Arg, 0, len(kw.Args)+1)
	args = append(args, kw.Args...)
	args = append(args, Arg{Key: d.PrimaryKey, Value: id})
	return &Statement{
		Query: fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s", d.Name, strings.Join(sets, ", "), d.PrimaryKey, b.ph.Placeholder(len(kw.Args)+1)),
		Args:  args,
	}, nil
}

// Select returns the filter statement for kw. Join keys of the form
// localField__otherTable__otherField add an INNER JOIN on the primary key
// and compare otherTable.otherField instead of a local column.
func (b *Builder) Select(d *Descriptor, kw *Kwargs) (*Statement, error) {
	if err := b.check(d, kw); err != nil {
		return nil, err
	}
	var (
		joins []string
		preds = make([]string, len(kw.Args))
	)
	for i, a := range kw.Args {
		p := b.ph.Placeholder(i + 1)
		j, ok := a.Join()
		if !ok {
			preds[i] = a.Key + " = " + p
			continue
		}
		if !isValidIdentifier(d.PrimaryKey) {
			return nil, ErrNoPrimaryKey
		}
		clause := fmt.Sprintf("INNER JOIN %s ON %s.%s = %s.%s", j.Table, d.Name, d.PrimaryKey, j.Table, j.LocalField)
		if !slices.Contains(joins, clause) {
			joins = append(joins, clause)
		}
		preds[i] = j.Table + "." + j.Field + " = " + p
	}
	where := strings.Join(preds, kw.Operator.String())
	var query string
	if len(joins) > 0 {
		query = fmt.Sprintf("SELECT %s.* FROM %s %s WHERE %s", d.Name, d.Name, strings.Join(joins, " "), where)
	} else {
		query = fmt.Sprintf("SELECT * FROM %s WHERE %s", d.Name, where)
	}
	return &Statement{Query: query, Args: slices.Clone(kw.Args)}, nil
}

// All returns SELECT * FROM <name>.
func (b *Builder) All(d *Descriptor) (*Statement, error) {
	return b.table(d, "SELECT * FROM %s")
}

// Delete returns DELETE FROM <name>. It removes every row of the table.
func (b *Builder) Delete(d *Descriptor) (*Statement, error) {
	return b.table(d, "DELETE FROM %s")
}

// DeleteByPK returns DELETE FROM <name> WHERE <pk> = <p>. It removes the
// single row keyed by id.
func (b *Builder) DeleteByPK(d *Descriptor, id Value) (*Statement, error) {
	if d == nil || !isValidIdentifier(d.Name) {
		return nil, errNoDescriptor
	}
	if !isValidIdentifier(d.PrimaryKey) {
		return nil, ErrNoPrimaryKey
	}
	return &Statement{
		Query: fmt.Sprintf("DELETE FROM %s WHERE %s = %s", d.Name, d.PrimaryKey, b.ph.Placeholder(1)),
		Args:  []Arg{{Key: d.PrimaryKey, Value: id}},
	}, nil
}

// Count returns SELECT COUNT(*) FROM <name>.
func (b *Builder) Count(d *Descriptor) (*Statement, error) {
	return b.table(d, "SELECT COUNT(*) FROM %s")
}

func (b *Builder) table(d *Descriptor, format string) (*Statement, error) {
	if d == nil || !isValidIdentifier(d.Name) {
		return nil, errNoDescriptor
	}
	return &Statement{Query: fmt.Sprintf(format, d.Name)}, nil
}

// check validates the descriptor and every argument key.
func (b *Builder) check(d *Descriptor, kw *Kwargs) error {
	if d == nil || !isValidIdentifier(d.Name) {
		return errNoDescriptor
	}
	if kw != nil && kw.err != nil {
		return kw.err
	}
	if kw.Len() == 0 {
		return ErrEmptyKwargs
	}
	for _, a := range kw.Args {
		if j, ok := a.Join(); ok {
			for _, s := range []string{j.LocalField, j.Table, j.Field} {
				if !isValidIdentifier(s) {
					return &InvalidKeyError{Key: a.Key}
				}
			}
			continue
		}
		if !isValidIdentifier(a.Key) {
			return &InvalidKeyError{Key: a.Key}
		}
	}
	return nil
}
