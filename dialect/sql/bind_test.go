package sql

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinder_Bind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  Arg
		want any
	}{
		{"int32", Arg{Key: "id", Value: Int(42)}, int64(42)},
		{"int64", Arg{Key: "id", Value: Int64(1 << 40)}, int64(1 << 40)},
		{"float", Arg{Key: "price", Value: Float(1000)}, float64(1000)},
		{"text", Arg{Key: "name", Value: Text("joe")}, "joe"},
		{"text_keeps_quotes", Arg{Key: "name", Value: Text(`"joe"`)}, `"joe"`},
		{"bool_true", Arg{Key: "is_sel", Value: Bool(true)}, int64(1)},
		{"bool_false", Arg{Key: "is_sel", Value: Bool(false)}, int64(0)},
		{"typed_int_quoted", Arg{Key: "id", Value: Typed(TypeInt32, `"42"`)}, int64(42)},
		{"typed_int_single_quoted", Arg{Key: "id", Value: Typed(TypeInt32, `'7'`)}, int64(7)},
		{"typed_float", Arg{Key: "price", Value: Typed(TypeFloat64, "2.5")}, 2.5},
		{"typed_text_quoted", Arg{Key: "name", Value: Typed(TypeText, `"joe"`)}, "joe"},
		{"zero_value", Arg{Key: "name"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Binder{}.Bind(tt.arg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBinder_ConversionError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  Arg
	}{
		{"int_not_a_number", Arg{Key: "id", Value: Typed(TypeInt32, "abc")}},
		{"int_overflow", Arg{Key: "id", Value: Typed(TypeInt32, "4294967296")}},
		{"int64_float_text", Arg{Key: "id", Value: Typed(TypeInt64, "1.5")}},
		{"float_not_a_number", Arg{Key: "price", Value: Typed(TypeFloat64, "cheap")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Binder{}.Bind(tt.arg)
			var e *BindConversionError
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.arg.Key, e.Key)
			assert.Equal(t, tt.arg.Type(), e.Type)
			var ne *strconv.NumError
			assert.ErrorAs(t, err, &ne)
		})
	}
}

func TestBinder_BindAll(t *testing.T) {
	t.Parallel()

	args, err := Binder{}.BindAll([]Arg{
		{Key: "name", Value: Text("joe")},
		{Key: "is_active", Value: Bool(true)},
		{Key: "id", Value: Int(3)},
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"joe", int64(1), int64(3)}, args)

	_, err = Binder{}.BindAll([]Arg{
		{Key: "name", Value: Text("joe")},
		{Key: "id", Value: Typed(TypeInt32, "x")},
	})
	assert.True(t, IsBindConversionError(err))
}
