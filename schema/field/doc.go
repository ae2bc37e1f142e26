// Package field provides fluent builders for declaring entity columns.
//
//	field.Int("id").PrimaryKey().Auto()
//	field.String("name").Size(50).Unique()
//	field.String("email").Unique().Nillable()
//	field.String("role").Default("user")
//	field.Float("price")
//	field.Text("description")
//	field.Time("at").Default(field.Now)
//	field.Bool("is_sel").Default(true)
//	field.Int("owner").ForeignKey("User.id")
//
// Columns are NOT NULL unless marked Nillable. Booleans are stored as
// integers, so a filter on true matches rows holding 1.
//
// Builder misuse, such as Size on a numeric field or a default of the wrong
// type, is recorded in Descriptor.Err and reported when the table is built.
package field
