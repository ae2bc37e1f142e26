package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syssam/alchemy/dialect"
	"github.com/syssam/alchemy/dialect/sql"
	"github.com/syssam/alchemy/internal/demo"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	Dialect string
	Entity  string
	Or      bool
	ID      string
}

// Explanation is the output of the explain command.
type Explanation struct {
	Dialect string `json:"dialect"`
	Query   string `json:"query"`
	Args    []any  `json:"args"`
}

var explainOps = []string{"create-table", "insert", "update", "select", "all", "delete", "count"}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{}
	cmd := &cobra.Command{
		Use:   "explain <op> [key=value ...]",
		Short: "Print the SQL of an operation without running it",
		Long: `Print the statement and bound arguments an operation on a demo entity
would run. No database connection is needed.

Operations: ` + strings.Join(explainOps, ", ") + `.

Values are read as integers, floats or booleans when they parse as one;
wrap them in quotes to force text. Keys of the form local__table__field
filter on a joined table.

Example:
  alchemy explain select owner__product__is_sel=true
  alchemy explain update --id 1 role=admin --dialect mysql`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := explain(opts, args[0], args[1:])
			if err != nil {
				return err
			}
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(e)
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Query)
			if len(e.Args) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "args: %v\n", e.Args)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", dialect.Postgres, "dialect (postgres|mysql|sqlite)")
	cmd.Flags().StringVarP(&opts.Entity, "entity", "e", "user", "demo entity (user|product)")
	cmd.Flags().BoolVar(&opts.Or, "or", false, "join predicates with or")
	cmd.Flags().StringVar(&opts.ID, "id", "1", "primary key of update")
	return cmd
}

func explain(opts *ExplainOptions, op string, pairs []string) (*Explanation, error) {
	b, err := sql.Dialect(opts.Dialect)
	if err != nil {
		return nil, err
	}
	var d *sql.Descriptor
	switch opts.Entity {
	case "user":
		d = (*demo.User)(nil).Descriptor()
	case "product":
		d = (*demo.Product)(nil).Descriptor()
	default:
		return nil, fmt.Errorf("unknown entity %q", opts.Entity)
	}
	kw := sql.KW()
	for _, p := range pairs {
		key, raw, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q is not key=value", p)
		}
		kw.Add(sql.Arg{Key: key, Value: parseValue(raw)})
	}
	if opts.Or {
		kw.Or()
	}

	var stmt *sql.Statement
	switch op {
	case "create-table":
		stmt, err = b.CreateTable(d)
	case "insert":
		stmt, err = b.Insert(d, kw)
	case "update":
		stmt, err = b.Update(d, parseValue(opts.ID), kw)
	case "select":
		stmt, err = b.Select(d, kw)
	case "all":
		stmt, err = b.All(d)
	case "delete":
		stmt, err = b.Delete(d)
	case "count":
		stmt, err = b.Count(d)
	default:
		return nil, fmt.Errorf("unknown operation %q: must be one of %v", op, explainOps)
	}
	if err != nil {
		return nil, err
	}
	args, err := sql.Binder{}.BindAll(stmt.Args)
	if err != nil {
		return nil, err
	}
	return &Explanation{Dialect: b.Name(), Query: stmt.Query, Args: args}, nil
}

// parseValue reads a command-line value as the narrowest matching type.
func parseValue(s string) sql.Value {
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return sql.Int(int32(n))
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return sql.Int64(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return sql.Float(f)
	}
	if s == "true" || s == "false" {
		return sql.Bool(s == "true")
	}
	return sql.Typed(sql.TypeText, s)
}
