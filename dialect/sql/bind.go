package sql

import (
	"strconv"
	"strings"
)

// Binder converts tagged values into driver arguments.
type Binder struct{}

// Bind converts the argument value according to its type tag. Integer and
// float tags are parsed from the textual form of the value, anything else
// is bound as text. Quotes surrounding a textual value are stripped.
func (Binder) Bind(a Arg) (any, error) {
	s := a.Value.String()
	if a.Value.raw {
		s = unquote(s)
	}
	switch t := a.Type(); t {
	case TypeInt32:
		s = strings.TrimSpace(unquote(s))
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, &BindConversionError{Key: a.Key, Type: t, Value: s, Err: err}
		}
		return n, nil
	case TypeInt64:
		s = strings.TrimSpace(unquote(s))
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, &BindConversionError{Key: a.Key, Type: t, Value: s, Err: err}
		}
		return n, nil
	case TypeFloat64:
		s = strings.TrimSpace(unquote(s))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, &BindConversionError{Key: a.Key, Type: t, Value: s, Err: err}
		}
		return f, nil
	default:
		return s, nil
	}
}

// BindAll binds the statement arguments in placeholder order.
func (b Binder) BindAll(args []Arg) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := b.Bind(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// unquote strips one pair of surrounding quotes left by textual encodings.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
