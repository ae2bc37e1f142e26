// Package alchemy maps entities to SQL statements built from keyword
// arguments.
//
// Entities describe their table once through a Descriptor and are read and
// written with generic functions:
//
//	client := alchemy.NewClient(drv)
//	alchemy.Migrate[User](ctx, client)
//	alchemy.Create[User](ctx, client, alchemy.KW().Set("name", "joe"))
//	users := alchemy.Filter[User](ctx, client, alchemy.KW().Set("owner__product__is_sel", true))
//
// Operations never return errors. Writes report success as a bool and reads
// return an empty result; every failure is logged once, with the entity, the
// operation and a unique op_id, through the logger of the Client.
package alchemy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syssam/alchemy/dialect/sql"
)

// Operation names used in errors and log records.
const (
	OpMigrate      = "migrate"
	OpCreate       = "create"
	OpSave         = "save"
	OpUpdate       = "update"
	OpAll          = "all"
	OpFilter       = "filter"
	OpGet          = "get"
	OpCount        = "count"
	OpDelete       = "delete"
	OpDeleteEntity = "delete_entity"
)

// Migrate creates the table of T if it does not exist.
func Migrate[T any, P EntityPtr[T]](ctx context.Context, c *Client) bool {
	return c.migrate(ctx, descriptorOf[T, P]())
}

// MigrateAll creates the tables of the given descriptors in order. It stops at
// the first failure.
//
//	alchemy.MigrateAll(ctx, client, (*User)(nil).Descriptor(), (*Product)(nil).Descriptor())
func MigrateAll(ctx context.Context, c *Client, descriptors ...*sql.Descriptor) bool {
	for _, d := range descriptors {
		if !c.migrate(ctx, d) {
			return false
		}
	}
	return true
}

func (c *Client) migrate(ctx context.Context, d *sql.Descriptor) bool {
	o := c.begin(ctx, d, OpMigrate)
	if c.err != nil {
		o.fail(c.err)
		return false
	}
	stmt, err := c.builder.CreateTable(d)
	if err != nil {
		o.fail(err)
		return false
	}
	if err := c.conn.Exec(ctx, stmt.Query, []any{}, nil); err != nil {
		o.fail(&SchemaExecutionError{Entity: o.entity, Err: err})
		return false
	}
	o.done()
	return true
}

// Create inserts a row of T built from kw.
//
//	alchemy.Create[User](ctx, client, alchemy.KW().
//	    Set("name", "joe").
//	    Set("email", "joe@x.io"))
func Create[T any, P EntityPtr[T]](ctx context.Context, c *Client, kw *Kwargs) bool {
	return c.insert(ctx, descriptorOf[T, P](), OpCreate, kw)
}

// Save inserts e. The primary key is left to the backend when it is
// auto-assigned.
func Save[T any, P EntityPtr[T]](ctx context.Context, c *Client, e P) bool {
	d := e.Descriptor()
	kw := KW()
	for _, a := range e.FieldValues() {
		if d.AutoIncrement && a.Key == d.PrimaryKey {
			continue
		}
		kw.Add(a)
	}
	return c.insert(ctx, d, OpSave, kw)
}

func (c *Client) insert(ctx context.Context, d *sql.Descriptor, name string, kw *Kwargs) bool {
	o := c.begin(ctx, d, name)
	if c.err != nil {
		o.fail(c.err)
		return false
	}
	stmt, err := c.builder.Insert(d, kw)
	if err == nil {
		err = o.exec(stmt)
	}
	if err != nil {
		o.fail(err)
		return false
	}
	o.done(slog.Int("args", len(stmt.Args)))
	return true
}

// Update sets the columns of kw on the row of T whose primary key is id.
// The connector of kw is ignored.
//
//	alchemy.Update[User](ctx, client, 1, alchemy.KW().Set("role", "admin"))
func Update[T any, P EntityPtr[T]](ctx context.Context, c *Client, id any, kw *Kwargs) bool {
	d := descriptorOf[T, P]()
	v, err := sql.ValueOf(id)
	if err != nil {
		c.begin(ctx, d, OpUpdate).fail(fmt.Errorf("alchemy: primary key: %w", err))
		return false
	}
	return c.update(ctx, d, v, kw)
}

// UpdateEntity writes every non-key column of e to the row with the same
// primary key.
func UpdateEntity[T any, P EntityPtr[T]](ctx context.Context, c *Client, e P) bool {
	d := e.Descriptor()
	id, rest, err := splitKey(d, e.FieldValues())
	if err != nil {
		c.begin(ctx, d, OpUpdate).fail(err)
		return false
	}
	return c.update(ctx, d, id, KW().Add(rest...))
}

// splitKey separates the primary-key value from the other field values.
func splitKey(d *sql.Descriptor, values []Arg) (sql.Value, []Arg, error) {
	var (
		id    sql.Value
		found bool
		rest  = make([]Arg, 0, len(values))
	)
	for _, a := range values {
		if a.Key == d.PrimaryKey {
			id, found = a.Value, true
			continue
		}
		rest = append(rest, a)
	}
	if !found {
		return id, nil, fmt.Errorf("alchemy: primary key %q missing from field values", d.PrimaryKey)
	}
	return id, rest, nil
}

func (c *Client) update(ctx context.Context, d *sql.Descriptor, id sql.Value, kw *Kwargs) bool {
	o := c.begin(ctx, d, OpUpdate)
	if c.err != nil {
		o.fail(c.err)
		return false
	}
	stmt, err := c.builder.Update(d, id, kw)
	if err == nil {
		err = o.exec(stmt)
	}
	if err != nil {
		o.fail(err)
		return false
	}
	o.done(slog.Int("args", len(stmt.Args)))
	return true
}

// All returns every row of T. It returns an empty result on any failure.
func All[T any, P EntityPtr[T]](ctx context.Context, c *Client) []T {
	o := c.begin(ctx, descriptorOf[T, P](), OpAll)
	if c.err != nil {
		o.fail(c.err)
		return nil
	}
	stmt, err := c.builder.All(descriptorOf[T, P]())
	if err != nil {
		o.fail(err)
		return nil
	}
	return collect[T, P](o, stmt)
}

// Filter returns the rows of T matching kw. Keys of the form
// local__table__field filter on a joined table. It returns an empty result
// on any failure.
//
//	alchemy.Filter[User](ctx, client, alchemy.KW().Set("owner__product__is_sel", true))
func Filter[T any, P EntityPtr[T]](ctx context.Context, c *Client, kw *Kwargs) []T {
	return filter[T, P](c.begin(ctx, descriptorOf[T, P](), OpFilter), kw)
}

// Get returns the first row of T matching kw.
func Get[T any, P EntityPtr[T]](ctx context.Context, c *Client, kw *Kwargs) (T, bool) {
	var zero T
	rows := filter[T, P](c.begin(ctx, descriptorOf[T, P](), OpGet), kw)
	if len(rows) == 0 {
		return zero, false
	}
	return rows[0], true
}

func filter[T any, P EntityPtr[T]](o *op, kw *Kwargs) []T {
	if o.c.err != nil {
		o.fail(o.c.err)
		return nil
	}
	stmt, err := o.c.builder.Select(descriptorOf[T, P](), kw)
	if err != nil {
		o.fail(err)
		return nil
	}
	return collect[T, P](o, stmt)
}

func collect[T any, P EntityPtr[T]](o *op, stmt *sql.Statement) []T {
	rows, err := o.query(stmt)
	if err != nil {
		o.fail(err)
		return nil
	}
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		var e T
		if err := P(&e).FromRow(r); err != nil {
			if !sql.IsDeserializationError(err) {
				err = &sql.DeserializationError{Err: err}
			}
			o.fail(err)
			return nil
		}
		out = append(out, e)
	}
	o.done(slog.Int("rows", len(out)))
	return out
}

// Count returns the number of rows of T. It returns 0 on any failure.
func Count[T any, P EntityPtr[T]](ctx context.Context, c *Client) uint64 {
	d := descriptorOf[T, P]()
	o := c.begin(ctx, d, OpCount)
	if c.err != nil {
		o.fail(c.err)
		return 0
	}
	n, err := count(o, d)
	if err != nil {
		o.fail(err)
		return 0
	}
	o.done(slog.Uint64("count", n))
	return n
}

func count(o *op, d *sql.Descriptor) (uint64, error) {
	stmt, err := o.c.builder.Count(d)
	if err != nil {
		return 0, err
	}
	rows, err := o.query(stmt)
	if err != nil {
		return 0, err
	}
	if len(rows) != 1 || len(rows[0].Columns()) == 0 {
		return 0, &StatementExecutionError{Entity: o.entity, Op: o.name, Err: errors.New("count returned no rows")}
	}
	n, err := rows[0].Int64(rows[0].Columns()[0])
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, &sql.DeserializationError{Column: rows[0].Columns()[0], Err: fmt.Errorf("negative count %d", n)}
	}
	return uint64(n), nil
}

// Delete removes every row of the table of T. The slice only selects the
// entity type; its contents are not used to narrow the statement.
//
//	products := alchemy.All[Product](ctx, client)
//	alchemy.Delete(ctx, client, products)
func Delete[T any, P EntityPtr[T]](ctx context.Context, c *Client, _ []T) bool {
	d := descriptorOf[T, P]()
	o := c.begin(ctx, d, OpDelete)
	if c.err != nil {
		o.fail(c.err)
		return false
	}
	stmt, err := c.builder.Delete(d)
	if err == nil {
		err = o.exec(stmt)
	}
	if err != nil {
		o.fail(err)
		return false
	}
	o.done()
	return true
}

// DeleteEntity removes the row of e, keyed by the primary-key value among its
// field values. It reports whether the statement succeeded; deleting a row
// that no longer exists is not a failure.
//
//	alchemy.DeleteEntity(ctx, client, &product)
func DeleteEntity[T any, P EntityPtr[T]](ctx context.Context, c *Client, e P) bool {
	d := e.Descriptor()
	o := c.begin(ctx, d, OpDeleteEntity)
	if c.err != nil {
		o.fail(c.err)
		return false
	}
	id, _, err := splitKey(d, e.FieldValues())
	if err != nil {
		o.fail(err)
		return false
	}
	stmt, err := c.builder.DeleteByPK(d, id)
	if err == nil {
		err = o.exec(stmt)
	}
	if err != nil {
		o.fail(err)
		return false
	}
	o.done()
	return true
}
