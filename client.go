package alchemy

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/syssam/alchemy/dialect"
	"github.com/syssam/alchemy/dialect/sql"
)

// Conn is the connection a Client runs statements on. Both dialect.Driver
// and dialect.Tx satisfy it, so a Client can be scoped to a transaction the
// caller commits or rolls back.
type Conn interface {
	dialect.ExecQuerier
	Dialect() string
}

// Client runs entity operations on a connection. It holds no mutable state
// and is safe for concurrent use.
type Client struct {
	conn    Conn
	builder *sql.Builder
	err     error
	binder  sql.Binder
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger receiving operation failures. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a Client running statements on conn. The placeholder
// style is chosen once from conn.Dialect(). An unsupported dialect makes every
// operation fail.
func NewClient(conn Conn, opts ...Option) *Client {
	c := &Client{conn: conn, logger: slog.Default()}
	c.builder, c.err = sql.Dialect(conn.Dialect())
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dialect returns the dialect name of the connection.
func (c *Client) Dialect() string {
	return c.conn.Dialect()
}

// Builder returns the statement builder of the client, or nil if the dialect
// is not supported.
func (c *Client) Builder() *sql.Builder {
	return c.builder
}

// op tracks a single facade call for logging.
type op struct {
	c      *Client
	ctx    context.Context
	entity string
	name   string
	id     string
	start  time.Time
}

func (c *Client) begin(ctx context.Context, d *sql.Descriptor, name string) *op {
	o := &op{c: c, ctx: ctx, name: name, id: uuid.NewString(), start: time.Now()}
	if d != nil {
		o.entity = d.Name
	}
	return o
}

func (o *op) attrs(extra ...slog.Attr) []slog.Attr {
	return append([]slog.Attr{
		slog.String("entity", o.entity),
		slog.String("op", o.name),
		slog.String("op_id", o.id),
	}, extra...)
}

// fail logs err once and reports the call as failed.
func (o *op) fail(err error) {
	attrs := o.attrs(slog.Any("err", err))
	if kind := sql.ConstraintKind(err); kind != "" {
		attrs = append(attrs, slog.String("constraint", kind))
	}
	o.c.logger.LogAttrs(o.ctx, slog.LevelError, "alchemy: operation failed", attrs...)
}

func (o *op) done(extra ...slog.Attr) {
	o.c.logger.LogAttrs(o.ctx, slog.LevelDebug, "alchemy: operation completed",
		o.attrs(append(extra, slog.Duration("duration", time.Since(o.start)))...)...)
}

// exec binds and executes stmt. Backend failures are wrapped in a
// StatementExecutionError.
func (o *op) exec(stmt *sql.Statement) error {
	args, err := o.c.binder.BindAll(stmt.Args)
	if err != nil {
		return err
	}
	if err := o.c.conn.Exec(o.ctx, stmt.Query, args, nil); err != nil {
		return &StatementExecutionError{Entity: o.entity, Op: o.name, Err: err}
	}
	return nil
}

// query binds and runs stmt and reads every row.
func (o *op) query(stmt *sql.Statement) ([]*sql.Row, error) {
	args, err := o.c.binder.BindAll(stmt.Args)
	if err != nil {
		return nil, err
	}
	var rows sql.Rows
	if err := o.c.conn.Query(o.ctx, stmt.Query, args, &rows); err != nil {
		return nil, &StatementExecutionError{Entity: o.entity, Op: o.name, Err: err}
	}
	defer rows.Close()
	out, err := sql.ScanRows(rows)
	if err != nil {
		return nil, &StatementExecutionError{Entity: o.entity, Op: o.name, Err: err}
	}
	return out, nil
}
