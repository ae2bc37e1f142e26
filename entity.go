package alchemy

import (
	"github.com/syssam/alchemy/dialect/sql"
)

// Entity is implemented by pointers to the record types stored by a Client.
//
//	type User struct {
//	    ID   alchemy.Serial
//	    Name alchemy.Text
//	}
//
//	var userTable = schema.New("user",
//	    field.Int("id").PrimaryKey().Auto(),
//	    field.String("name").Size(50),
//	).MustDescriptor()
//
//	func (*User) Descriptor() *alchemy.Descriptor { return userTable }
//
//	func (u *User) FromRow(r *alchemy.Row) error {
//	    id, err := r.Int("id")
//	    if err != nil {
//	        return err
//	    }
//	    u.ID = alchemy.Serial(id)
//	    u.Name, err = r.String("name")
//	    return err
//	}
//
//	func (u *User) FieldValues() []alchemy.Arg {
//	    return []alchemy.Arg{
//	        {Key: "id", Value: sql.Int(int32(u.ID))},
//	        {Key: "name", Value: sql.Text(u.Name)},
//	    }
//	}
type Entity interface {
	// Descriptor returns the static table metadata. It must not depend on
	// the receiver's fields, since it is called on zero values.
	Descriptor() *sql.Descriptor
	// FromRow populates the entity from a result row.
	FromRow(*sql.Row) error
	// FieldValues returns the column values of the entity in declaration order.
	FieldValues() []sql.Arg
}

// EntityPtr constrains the type parameters of the generic operations to
// pointer types implementing Entity.
type EntityPtr[T any] interface {
	*T
	Entity
}

type (
	// Descriptor holds the table metadata of an entity.
	Descriptor = sql.Descriptor
	// Kwargs is an ordered list of keyword arguments with a connector.
	Kwargs = sql.Kwargs
	// Arg is a single keyword argument.
	Arg = sql.Arg
	// Value is a tagged scalar.
	Value = sql.Value
	// Row is a result row addressable by column name.
	Row = sql.Row
	// Operator connects filter predicates.
	Operator = sql.Operator
)

// Predicate connectors.
const (
	And = sql.And
	Or  = sql.Or
)

// KW returns an empty Kwargs joined by And.
//
//	alchemy.KW().Set("email", "joe@x.io").Set("password", "secret")
//	alchemy.KW().Set("owner__product__is_sel", true)
func KW() *Kwargs {
	return sql.KW()
}

// Scalar column types.
type (
	Serial   = int32
	Integer  = int32
	Text     = string
	Float    = float64
	Date     = string
	DateTime = string
	Boolean  = bool
)

func descriptorOf[T any, P EntityPtr[T]]() *sql.Descriptor {
	var zero T
	return P(&zero).Descriptor()
}
