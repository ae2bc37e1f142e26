// Package sql provides the statement builder, value binder and database/sql
// driver used by alchemy.
//
// # Arguments
//
// Filters and updates are expressed as Kwargs: an ordered list of named,
// typed values combined by a single operator.
//
//	kw := sql.KW().
//	    Set("name", "joe").
//	    Set("email", "joe@x.io")
//
//	kw = sql.KW().Set("role", "admin").Set("role", "owner").Or()
//
// Every value carries its own type tag (i32, i64, f64 or text). Booleans are
// stored as the integers 1 and 0.
//
// # Join Keys
//
// A key of the form localField__otherTable__otherField filters on a column of
// another table:
//
//	sql.KW().Set("owner__product__is_sel", true)
//
// On the user table this produces:
//
//	SELECT user.* FROM user INNER JOIN product ON user.id = product.owner WHERE product.is_sel = $1
//
// # Builder
//
// A Builder renders statements for one dialect. It is immutable and safe for
// concurrent use:
//
//	b, _ := sql.Dialect(dialect.Postgres)
//	stmt, err := b.Insert(desc, sql.KW().Set("name", "joe"))
//	// stmt.Query: INSERT INTO user (name) VALUES ($1)
//
// Statements that need arguments reject an empty Kwargs with ErrEmptyKwargs.
//
// # Binding
//
// The Binder turns statement arguments into driver values, parsing textual
// values declared as integers or floats:
//
//	args, err := sql.Binder{}.BindAll(stmt.Args)
//
// # Drivers
//
// Driver wraps *sql.DB and implements dialect.Driver. StatsDriver and
// DebugDriver wrap a Driver with statistics collection and statement logging.
package sql
