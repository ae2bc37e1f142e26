// Package schema turns declared entity tables into descriptors.
//
// A table is declared with the builders of the [field] package:
//
//	var users = schema.New("user",
//	    field.Int("id").PrimaryKey().Auto(),
//	    field.String("name").Size(50).Unique(),
//	    field.String("email").Unique().Nillable(),
//	    field.Bool("is_admin").Default(false),
//	)
//
// Descriptor validates the declaration and renders a CREATE TABLE IF NOT
// EXISTS statement for every supported dialect:
//
//	CREATE TABLE IF NOT EXISTS user (id SERIAL PRIMARY KEY, ...)                  -- postgres
//	CREATE TABLE IF NOT EXISTS user (id INT AUTO_INCREMENT PRIMARY KEY, ...)      -- mysql
//	CREATE TABLE IF NOT EXISTS user (id INTEGER PRIMARY KEY AUTOINCREMENT, ...)   -- sqlite
//
// ValidateSchema checks foreign keys across tables and Sort orders tables so
// referenced tables are created first.
package schema
