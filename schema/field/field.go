package field

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
)

// Type is the column type of a field.
type Type uint8

// Field types.
const (
	TypeInvalid Type = iota
	TypeInt
	TypeInt64
	TypeFloat
	TypeString
	TypeText
	TypeBool
	TypeTime
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeInt:     "int",
	TypeInt64:   "int64",
	TypeFloat:   "float64",
	TypeString:  "string",
	TypeText:    "text",
	TypeBool:    "bool",
	TypeTime:    "time",
}

// String returns the name of the type.
func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Integer reports if the type is an integer type.
func (t Type) Integer() bool { return t == TypeInt || t == TypeInt64 }

// Now is the Time default resolved to the current timestamp by the database.
const Now = "now"

// DefaultSize is the VARCHAR size of String fields without an explicit Size.
const DefaultSize = 255

// Reference is a foreign-key target.
type Reference struct {
	Table  string
	Column string
}

// Descriptor describes a single column.
type Descriptor struct {
	Name       string
	Type       Type
	Size       int
	PrimaryKey bool
	Auto       bool
	Unique     bool
	Nillable   bool
	Default    any
	Reference  *Reference
	Comment    string
	Err        error
}

// Builder is the fluent builder of a field.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// Int returns a 32-bit integer field.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Int64 returns a 64-bit integer field.
func Int64(name string) *Builder { return newBuilder(name, TypeInt64) }

// Float returns a float64 field.
func Float(name string) *Builder { return newBuilder(name, TypeFloat) }

// String returns a VARCHAR field of DefaultSize characters.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Text returns an unbounded text field.
func Text(name string) *Builder { return newBuilder(name, TypeText) }

// Bool returns a boolean field. Booleans are stored as the integers 1 and 0.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Time returns a timestamp field. Values are read back as text.
func Time(name string) *Builder { return newBuilder(name, TypeTime) }

// PrimaryKey marks the field as the table primary key.
func (b *Builder) PrimaryKey() *Builder {
	b.desc.PrimaryKey = true
	return b
}

// Auto lets the database assign the value on insert. Only integer primary keys
// can be auto-assigned.
func (b *Builder) Auto() *Builder {
	b.desc.Auto = true
	if !b.desc.Type.Integer() {
		b.err(fmt.Errorf("auto-increment requires an integer field, got %s", b.desc.Type))
	}
	return b
}

// Unique adds a UNIQUE constraint.
func (b *Builder) Unique() *Builder {
	b.desc.Unique = true
	return b
}

// Nillable makes the column nullable. Columns are NOT NULL by default.
func (b *Builder) Nillable() *Builder {
	b.desc.Nillable = true
	return b
}

// Size sets the maximum length of a String field.
func (b *Builder) Size(n int) *Builder {
	switch {
	case b.desc.Type != TypeString:
		b.err(fmt.Errorf("size is only supported by string fields, got %s", b.desc.Type))
	case n <= 0:
		b.err(fmt.Errorf("size must be positive, got %d", n))
	default:
		b.desc.Size = n
	}
	return b
}

// Default sets the column default. The value must match the field type;
// Time fields accept Now or a literal string.
func (b *Builder) Default(v any) *Builder {
	var ok bool
	switch b.desc.Type {
	case TypeInt, TypeInt64:
		switch v.(type) {
		case int, int32, int64:
			ok = true
		}
	case TypeFloat:
		switch v.(type) {
		case int, float32, float64:
			ok = true
		}
	case TypeString, TypeText, TypeTime:
		_, ok = v.(string)
	case TypeBool:
		_, ok = v.(bool)
	}
	if !ok {
		b.err(fmt.Errorf("default value %v (%T) does not match %s field", v, v, b.desc.Type))
		return b
	}
	b.desc.Default = v
	return b
}

// References adds a foreign key to table.column.
func (b *Builder) References(table, column string) *Builder {
	b.desc.Reference = &Reference{Table: table, Column: column}
	return b
}

// ForeignKey adds a foreign key in the Type.column notation, where Type is the
// Go name of the referenced entity:
//
//	field.Int("owner").ForeignKey("User.id") // REFERENCES user(id)
func (b *Builder) ForeignKey(ref string) *Builder {
	typ, column, ok := strings.Cut(ref, ".")
	if !ok || typ == "" || column == "" {
		b.err(fmt.Errorf("foreign key %q must be in the Type.column form", ref))
		return b
	}
	return b.References(inflect.Underscore(typ), column)
}

// Comment sets the field comment.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Descriptor returns the field descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}

func (b *Builder) err(err error) {
	if b.desc.Err == nil {
		b.desc.Err = fmt.Errorf("field %q: %w", b.desc.Name, err)
	}
}
