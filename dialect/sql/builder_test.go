package sql

import (
	"fmt"
	"strings"
	"testing"

	"github.com/syssam/alchemy/dialect"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userDesc = &Descriptor{
	Name:          "user",
	PrimaryKey:    "id",
	Schema:        "CREATE TABLE IF NOT EXISTS user (id INTEGER PRIMARY KEY)",
	AutoIncrement: true,
}

func builder(t *testing.T, name string) *Builder {
	t.Helper()
	b, err := Dialect(name)
	require.NoError(t, err)
	return b
}

func bound(t *testing.T, stmt *Statement) []any {
	t.Helper()
	args, err := Binder{}.BindAll(stmt.Args)
	require.NoError(t, err)
	return args
}

func TestBuilder_Insert(t *testing.T) {
	t.Parallel()

	stmt, err := builder(t, dialect.Postgres).Insert(userDesc, KW().Set("name", "joe").Set("email", "joe@x.io"))
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO user (name, email) VALUES ($1, $2)", stmt.Query)
	assert.Equal(t, []any{"joe", "joe@x.io"}, bound(t, stmt))

	stmt, err = builder(t, dialect.MySQL).Insert(userDesc, KW().Set("name", "joe").Set("email", "joe@x.io"))
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO user (name, email) VALUES (?, ?)", stmt.Query)
}

func TestBuilder_Update(t *testing.T) {
	t.Parallel()

	kw := KW().Set("role", "admin").Set("name", "joe").Or()
	stmt, err := builder(t, dialect.Postgres).Update(userDesc, Int(7), kw)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE user SET role = $1, name = $2 WHERE id = $3", stmt.Query)
	assert.Equal(t, []any{"admin", "joe", int64(7)}, bound(t, stmt))

	stmt, err = builder(t, dialect.SQLite).Update(userDesc, Int(7), kw)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE user SET role = ?, name = ? WHERE id = ?", stmt.Query)
}

func TestBuilder_DeleteByPK(t *testing.T) {
	t.Parallel()

	stmt, err := builder(t, dialect.Postgres).DeleteByPK(userDesc, Int(7))
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM user WHERE id = $1", stmt.Query)
	assert.Equal(t, []any{int64(7)}, bound(t, stmt))

	stmt, err = builder(t, dialect.MySQL).DeleteByPK(userDesc, Int64(1<<40))
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM user WHERE id = ?", stmt.Query)
	assert.Equal(t, []any{int64(1 << 40)}, bound(t, stmt))

	_, err = builder(t, dialect.SQLite).DeleteByPK(nil, Int(1))
	require.Error(t, err)
}

func TestBuilder_Select(t *testing.T) {
	t.Parallel()

	t.Run("and", func(t *testing.T) {
		kw := KW().Set("a", 1).Set("b", 2).Set("c", 3).Set("d", 4)
		stmt, err := builder(t, dialect.Postgres).Select(userDesc, kw)
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM user WHERE a = $1 and b = $2 and c = $3 and d = $4", stmt.Query)
		where := stmt.Query[strings.Index(stmt.Query, "WHERE ")+len("WHERE "):]
		assert.Equal(t, kw.Len()-1, strings.Count(where, " and "))
		assert.Equal(t, []any{int64(1), int64(2), int64(3), int64(4)}, bound(t, stmt))
	})

	t.Run("or", func(t *testing.T) {
		stmt, err := builder(t, dialect.SQLite).Select(userDesc, KW().Set("role", "admin").Set("role", "owner").Or())
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM user WHERE role = ? or role = ?", stmt.Query)
	})

	t.Run("join", func(t *testing.T) {
		stmt, err := builder(t, dialect.Postgres).Select(userDesc, KW().Set("owner__product__is_sel", true))
		require.NoError(t, err)
		assert.Equal(t, "SELECT user.* FROM user INNER JOIN product ON user.id = product.owner WHERE product.is_sel = $1", stmt.Query)
		assert.Equal(t, []any{int64(1)}, bound(t, stmt))
	})

	t.Run("join_per_arg", func(t *testing.T) {
		kw := KW().
			Set("owner__product__is_sel", true).
			Set("author__post__title", "hello").
			Set("name", "joe")
		stmt, err := builder(t, dialect.Postgres).Select(userDesc, kw)
		require.NoError(t, err)
		assert.Equal(t, "SELECT user.* FROM user"+
			" INNER JOIN product ON user.id = product.owner"+
			" INNER JOIN post ON user.id = post.author"+
			" WHERE product.is_sel = $1 and post.title = $2 and name = $3", stmt.Query)
		assert.Equal(t, 1, strings.Count(stmt.Query, "INNER JOIN product"))
	})

	t.Run("same_join_twice", func(t *testing.T) {
		kw := KW().Set("owner__product__is_sel", true).Set("owner__product__price", 10.5)
		stmt, err := builder(t, dialect.Postgres).Select(userDesc, kw)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(stmt.Query, "INNER JOIN"))
		assert.True(t, strings.HasSuffix(stmt.Query, "WHERE product.is_sel = $1 and product.price = $2"))
	})

	t.Run("two_segments_is_plain", func(t *testing.T) {
		stmt, err := builder(t, dialect.Postgres).Select(userDesc, KW().Set("first__name", "joe"))
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM user WHERE first__name = $1", stmt.Query)
	})
}

func TestBuilder_Table(t *testing.T) {
	t.Parallel()

	b := builder(t, dialect.MySQL)
	for _, tt := range []struct {
		build func(*Descriptor) (*Statement, error)
		want  string
	}{
		{b.All, "SELECT * FROM user"},
		{b.Count, "SELECT COUNT(*) FROM user"},
		{b.Delete, "DELETE FROM user"},
		{b.CreateTable, userDesc.Schema},
	} {
		stmt, err := tt.build(userDesc)
		require.NoError(t, err)
		assert.Equal(t, tt.want, stmt.Query)
		assert.Empty(t, stmt.Args)
	}
}

func TestBuilder_CreateTableDialect(t *testing.T) {
	t.Parallel()

	d := *userDesc
	d.Dialects = map[string]string{dialect.Postgres: "CREATE TABLE IF NOT EXISTS user (id SERIAL PRIMARY KEY)"}
	stmt, err := builder(t, dialect.Postgres).CreateTable(&d)
	require.NoError(t, err)
	assert.Equal(t, d.Dialects[dialect.Postgres], stmt.Query)

	stmt, err = builder(t, dialect.SQLite).CreateTable(&d)
	require.NoError(t, err)
	assert.Equal(t, d.Schema, stmt.Query)
}

func TestBuilder_Errors(t *testing.T) {
	t.Parallel()

	b := builder(t, dialect.Postgres)

	t.Run("empty_kwargs", func(t *testing.T) {
		_, err := b.Select(userDesc, KW())
		require.ErrorIs(t, err, ErrEmptyKwargs)
		_, err = b.Update(userDesc, Int(1), nil)
		require.ErrorIs(t, err, ErrEmptyKwargs)
		_, err = b.Insert(userDesc, KW())
		require.ErrorIs(t, err, ErrEmptyKwargs)
	})

	t.Run("invalid_key", func(t *testing.T) {
		_, err := b.Select(userDesc, KW().Set("name; DROP TABLE user", "x"))
		var e *InvalidKeyError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "name; DROP TABLE user", e.Key)

		_, err = b.Select(userDesc, KW().Set("owner____is_sel", true))
		require.ErrorAs(t, err, &e)
	})

	t.Run("kwargs_error", func(t *testing.T) {
		_, err := b.Insert(userDesc, KW().Set("tags", []string{"a"}))
		var e *ValueTypeError
		require.ErrorAs(t, err, &e)
		assert.Equal(t, "tags", e.Key)
		assert.True(t, IsValueTypeError(err))
	})

	t.Run("invalid_primary_key", func(t *testing.T) {
		for _, pk := range []string{"", "id = 1 OR 1", "1id"} {
			d := &Descriptor{Name: "user", PrimaryKey: pk}
			_, err := b.Update(d, Int(1), KW().Set("name", "joe"))
			require.ErrorIs(t, err, ErrNoPrimaryKey, "%q", pk)
			_, err = b.Select(d, KW().Set("owner__product__is_sel", true))
			require.ErrorIs(t, err, ErrNoPrimaryKey, "%q", pk)
			_, err = b.DeleteByPK(d, Int(1))
			require.ErrorIs(t, err, ErrNoPrimaryKey, "%q", pk)
		}
		// A select without joins does not use the primary key.
		stmt, err := b.Select(&Descriptor{Name: "user"}, KW().Set("name", "joe"))
		require.NoError(t, err)
		assert.Equal(t, "SELECT * FROM user WHERE name = $1", stmt.Query)
	})

	t.Run("missing_descriptor", func(t *testing.T) {
		_, err := b.Count(nil)
		require.Error(t, err)
		_, err = b.CreateTable(&Descriptor{Name: "user"})
		require.Error(t, err)
	})

	t.Run("unknown_dialect", func(t *testing.T) {
		_, err := Dialect("oracle")
		require.Error(t, err)
	})
}

func TestBuilder_Golden(t *testing.T) {
	t.Parallel()

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	for _, name := range []string{dialect.Postgres, dialect.MySQL, dialect.SQLite} {
		t.Run(name, func(t *testing.T) {
			b := builder(t, name)
			var sb strings.Builder
			render := func(stmt *Statement, err error) {
				require.NoError(t, err)
				fmt.Fprintf(&sb, "%s\n%v\n", stmt.Query, bound(t, stmt))
			}
			render(b.Insert(userDesc, KW().Set("name", "joe").Set("email", "joe@x.io")))
			render(b.Update(userDesc, Int(7), KW().Set("role", "admin").Set("is_active", true)))
			render(b.Select(userDesc, KW().Set("name", "joe").Set("email", "joe@x.io")))
			render(b.Select(userDesc, KW().Set("role", "admin").Set("role", "owner").Or()))
			render(b.Select(userDesc, KW().Set("owner__product__is_sel", true).Set("name", "joe")))
			render(b.All(userDesc))
			render(b.Count(userDesc))
			render(b.Delete(userDesc))
			render(b.DeleteByPK(userDesc, Int(7)))
			g.Assert(t, "statements_"+name, []byte(sb.String()))
		})
	}
}
