// Package demo holds the User and Product example entities and a scripted
// walk through the entity operations.
package demo

import (
	"github.com/syssam/alchemy"
	"github.com/syssam/alchemy/dialect/sql"
	"github.com/syssam/alchemy/schema"
	"github.com/syssam/alchemy/schema/field"
)

// UserTable declares the user table.
var UserTable = schema.New("user",
	field.Int("id").PrimaryKey().Auto(),
	field.String("name").Size(50).Unique(),
	field.String("email").Size(255).Unique().Nillable(),
	field.String("password").Size(255),
	field.String("role").Default("user"),
)

// ProductTable declares the product table.
var ProductTable = schema.New("product",
	field.Int("id").PrimaryKey().Auto(),
	field.String("name").Size(50),
	field.Float("price"),
	field.Text("description"),
	field.Time("at").Default(field.Now),
	field.Bool("is_sel").Default(true),
	field.Int("owner").ForeignKey("User.id"),
)

var (
	userDescriptor    = UserTable.MustDescriptor()
	productDescriptor = ProductTable.MustDescriptor()
)

// User is an account.
type User struct {
	ID       alchemy.Serial
	Name     alchemy.Text
	Email    alchemy.Text
	Password alchemy.Text
	Role     alchemy.Text
}

// Descriptor implements alchemy.Entity.
func (*User) Descriptor() *alchemy.Descriptor { return userDescriptor }

// FromRow implements alchemy.Entity.
func (u *User) FromRow(r *alchemy.Row) error {
	id, err := r.Int("id")
	if err != nil {
		return err
	}
	u.ID = alchemy.Serial(id)
	if u.Name, err = r.String("name"); err != nil {
		return err
	}
	if u.Email, err = r.String("email"); err != nil {
		return err
	}
	if u.Password, err = r.String("password"); err != nil {
		return err
	}
	u.Role, err = r.String("role")
	return err
}

// FieldValues implements alchemy.Entity. An empty role is left to the
// column default.
func (u *User) FieldValues() []alchemy.Arg {
	args := []alchemy.Arg{
		{Key: "id", Value: sql.Int(u.ID)},
		{Key: "name", Value: sql.Text(u.Name)},
		{Key: "email", Value: sql.Text(u.Email)},
		{Key: "password", Value: sql.Text(u.Password)},
	}
	if u.Role != "" {
		args = append(args, alchemy.Arg{Key: "role", Value: sql.Text(u.Role)})
	}
	return args
}

// Product is an item offered by a user.
type Product struct {
	ID          alchemy.Serial
	Name        alchemy.Text
	Price       alchemy.Float
	Description alchemy.Text
	At          alchemy.DateTime
	IsSel       alchemy.Boolean
	Owner       alchemy.Integer
}

// Descriptor implements alchemy.Entity.
func (*Product) Descriptor() *alchemy.Descriptor { return productDescriptor }

// FromRow implements alchemy.Entity.
func (p *Product) FromRow(r *alchemy.Row) error {
	id, err := r.Int("id")
	if err != nil {
		return err
	}
	p.ID = alchemy.Serial(id)
	if p.Name, err = r.String("name"); err != nil {
		return err
	}
	if p.Price, err = r.Float64("price"); err != nil {
		return err
	}
	if p.Description, err = r.String("description"); err != nil {
		return err
	}
	if p.At, err = r.String("at"); err != nil {
		return err
	}
	if p.IsSel, err = r.Bool("is_sel"); err != nil {
		return err
	}
	owner, err := r.Int("owner")
	p.Owner = alchemy.Integer(owner)
	return err
}

// FieldValues implements alchemy.Entity. An empty timestamp is left to the
// column default.
func (p *Product) FieldValues() []alchemy.Arg {
	args := []alchemy.Arg{
		{Key: "id", Value: sql.Int(p.ID)},
		{Key: "name", Value: sql.Text(p.Name)},
		{Key: "price", Value: sql.Float(p.Price)},
		{Key: "description", Value: sql.Text(p.Description)},
	}
	if p.At != "" {
		args = append(args, alchemy.Arg{Key: "at", Value: sql.Text(p.At)})
	}
	return append(args,
		alchemy.Arg{Key: "is_sel", Value: sql.Bool(p.IsSel)},
		alchemy.Arg{Key: "owner", Value: sql.Int(p.Owner)},
	)
}

// Tables returns the demo tables in creation order.
func Tables() []*schema.Table {
	return []*schema.Table{UserTable, ProductTable}
}
