package sql

import (
	"fmt"
	"strconv"
	"time"
)

// TimeLayout is the text form of time values. It matches the output of
// CURRENT_TIMESTAMP on every supported backend.
const TimeLayout = "2006-01-02 15:04:05"

// Type is the tag carried by every Value. The Binder dispatches on it.
type Type string

// Value type tags.
const (
	TypeInt32   Type = "i32"
	TypeInt64   Type = "i64"
	TypeFloat64 Type = "f64"
	TypeText    Type = "text"
)

// Value is a tagged scalar used as a filter or update operand.
// The zero Value is an empty text value.
type Value struct {
	typ Type
	v   any  // int64, float64 or string
	raw bool // textual input, see Typed
}

// Int returns a 32-bit integer value.
func Int(v int32) Value { return Value{typ: TypeInt32, v: int64(v)} }

// Int64 returns a 64-bit integer value.
func Int64(v int64) Value { return Value{typ: TypeInt64, v: v} }

// Float returns a 64-bit float value.
func Float(v float64) Value { return Value{typ: TypeFloat64, v: v} }

// Text returns a text value.
func Text(v string) Value { return Value{typ: TypeText, v: v} }

// Bool returns the integer form of a boolean: 1 for true, 0 for false.
func Bool(v bool) Value {
	if v {
		return Int(1)
	}
	return Int(0)
}

// Typed returns a textual value declared to hold the given type.
// The text is converted when the value is bound.
func Typed(t Type, s string) Value { return Value{typ: t, v: s, raw: true} }

// ValueOf converts a Go scalar into a Value.
func ValueOf(v any) (Value, error) {
	switch v := v.(type) {
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		if int64(v) < -1<<31 || int64(v) > 1<<31-1 {
			return Int64(int64(v)), nil
		}
		return Int(int32(v)), nil
	case int8:
		return Int(int32(v)), nil
	case int16:
		return Int(int32(v)), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int64(v), nil
	case uint8:
		return Int(int32(v)), nil
	case uint16:
		return Int(int32(v)), nil
	case uint32:
		return Int64(int64(v)), nil
	case float32:
		return Float(float64(v)), nil
	case float64:
		return Float(v), nil
	case string:
		return Text(v), nil
	case []byte:
		return Text(string(v)), nil
	case time.Time:
		return Text(v.UTC().Format(TimeLayout)), nil
	case fmt.Stringer:
		return Text(v.String()), nil
	default:
		return Value{}, &ValueTypeError{Type: fmt.Sprintf("%T", v)}
	}
}

// Type returns the type tag of the value.
func (v Value) Type() Type {
	if v.typ == "" {
		return TypeText
	}
	return v.typ
}

// Any returns the raw payload of the value.
func (v Value) Any() any {
	if v.v == nil {
		return ""
	}
	return v.v
}

// String returns the textual form of the value.
func (v Value) String() string {
	switch x := v.v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	default:
		return ""
	}
}
