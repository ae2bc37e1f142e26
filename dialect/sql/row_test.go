package sql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRow_Getters(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := NewRow(
		[]string{"id", "name", "price", "is_sel", "at", "raw_int", "raw_float", "flag", "nothing", "id"},
		[]any{int64(7), "joe", 9.5, int64(1), at, []byte("12"), []byte("1.25"), true, nil, int64(99)},
	)

	id, err := r.Int("id")
	require.NoError(t, err)
	assert.Equal(t, 7, id, "first duplicate column wins")

	name, err := r.String("name")
	require.NoError(t, err)
	assert.Equal(t, "joe", name)

	price, err := r.Float64("price")
	require.NoError(t, err)
	assert.Equal(t, 9.5, price)

	sel, err := r.Bool("is_sel")
	require.NoError(t, err)
	assert.True(t, sel)

	s, err := r.String("at")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01T10:00:00Z", s)

	n, err := r.Int64("raw_int")
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)

	f, err := r.Float64("raw_float")
	require.NoError(t, err)
	assert.Equal(t, 1.25, f)

	flag, err := r.Bool("flag")
	require.NoError(t, err)
	assert.True(t, flag)

	empty, err := r.String("nothing")
	require.NoError(t, err)
	assert.Empty(t, empty)

	v, ok := r.Value("name")
	assert.True(t, ok)
	assert.Equal(t, "joe", v)
	assert.Len(t, r.Columns(), 10)
}

func TestRow_DeserializationError(t *testing.T) {
	t.Parallel()

	r := NewRow([]string{"id", "name", "at"}, []any{int64(1), "joe", time.Now()})

	_, err := r.String("email")
	var e *DeserializationError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "email", e.Column)

	_, err = r.Int("name")
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "name", e.Column)

	_, err = r.String("id")
	assert.True(t, IsDeserializationError(err))

	_, err = r.Float64("at")
	assert.True(t, IsDeserializationError(err))
}
