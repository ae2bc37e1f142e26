package sql

import (
	"errors"
	"regexp"
	"strings"
)

// Operator combines the predicates of a Kwargs.
type Operator int

// Operators. And is the default.
const (
	And Operator = iota
	Or
)

// String returns the SQL connector of the operator.
func (o Operator) String() string {
	if o == Or {
		return " or "
	}
	return " and "
}

// joinSep separates the segments of a join key: localField__otherTable__otherField.
const joinSep = "__"

// Arg is a single named criterion.
type Arg struct {
	Key   string
	Value Value
}

// Type returns the type tag of the argument value.
func (a Arg) Type() Type { return a.Value.Type() }

// Join describes the table traversal encoded in a join key.
type Join struct {
	LocalField string
	Table      string
	Field      string
}

// Join splits a join key into its three segments. It reports false for plain column keys.
func (a Arg) Join() (Join, bool) {
	parts := strings.Split(a.Key, joinSep)
	if len(parts) != 3 {
		return Join{}, false
	}
	return Join{LocalField: parts[0], Table: parts[1], Field: parts[2]}, true
}

// Kwargs is an ordered list of arguments combined by a single operator.
// Argument order fixes both the order of the generated clauses and the bind order.
type Kwargs struct {
	Operator Operator
	Args     []Arg
	err      error
}

// KW returns an empty Kwargs combined with And.
//
//	sql.KW().Set("name", "joe").Set("email", "joe@x.io")
func KW() *Kwargs {
	return &Kwargs{}
}

// Set appends the key with a Go scalar value. Unsupported types are recorded
// and reported by Err.
func (kw *Kwargs) Set(key string, v any) *Kwargs {
	if kw.err != nil {
		return kw
	}
	val, err := ValueOf(v)
	if err != nil {
		var e *ValueTypeError
		if errors.As(err, &e) {
			err = &ValueTypeError{Key: key, Type: e.Type}
		}
		kw.err = err
		return kw
	}
	return kw.Add(Arg{Key: key, Value: val})
}

// Add appends an argument.
func (kw *Kwargs) Add(args ...Arg) *Kwargs {
	kw.Args = append(kw.Args, args...)
	return kw
}

// Int appends a 32-bit integer argument.
func (kw *Kwargs) Int(key string, v int32) *Kwargs {
	return kw.Add(Arg{Key: key, Value: Int(v)})
}

// Float appends a float argument.
func (kw *Kwargs) Float(key string, v float64) *Kwargs {
	return kw.Add(Arg{Key: key, Value: Float(v)})
}

// Text appends a text argument.
func (kw *Kwargs) Text(key, v string) *Kwargs {
	return kw.Add(Arg{Key: key, Value: Text(v)})
}

// Bool appends a boolean argument, stored as 1 or 0.
func (kw *Kwargs) Bool(key string, v bool) *Kwargs {
	return kw.Add(Arg{Key: key, Value: Bool(v)})
}

// Or switches the whole set to the Or operator.
func (kw *Kwargs) Or() *Kwargs {
	kw.Operator = Or
	return kw
}

// Err returns the first error recorded while building the set.
func (kw *Kwargs) Err() error {
	return kw.err
}

// Len returns the number of arguments.
func (kw *Kwargs) Len() int {
	if kw == nil {
		return 0
	}
	return len(kw.Args)
}

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// ValidIdentifier reports if s can be used as a table or column name.
func ValidIdentifier(s string) bool { return isValidIdentifier(s) }
