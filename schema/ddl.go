package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/alchemy/dialect"
	"github.com/syssam/alchemy/schema/field"
)

// createTable renders the CREATE TABLE statement of a validated table.
func createTable(name string, t *Table) string {
	defs := make([]string, 0, len(t.Fields))
	for _, f := range t.Fields {
		defs = append(defs, column(name, f))
	}
	for _, f := range t.Fields {
		if ref := f.Reference; ref != nil {
			defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s(%s)", f.Name, ref.Table, ref.Column))
		}
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", t.Name, strings.Join(defs, ", "))
}

func column(name string, f *field.Descriptor) string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteByte(' ')
	switch {
	case f.PrimaryKey && f.Auto:
		b.WriteString(autoPrimaryKey(name, f.Type))
		return b.String()
	case f.PrimaryKey:
		b.WriteString(columnType(name, f))
		b.WriteString(" PRIMARY KEY")
		return b.String()
	}
	b.WriteString(columnType(name, f))
	if !f.Nillable {
		b.WriteString(" NOT NULL")
	}
	if f.Unique {
		b.WriteString(" UNIQUE")
	}
	if f.Default != nil {
		b.WriteString(" DEFAULT ")
		b.WriteString(defaultLiteral(f))
	}
	return b.String()
}

func autoPrimaryKey(name string, t field.Type) string {
	switch name {
	case dialect.Postgres:
		if t == field.TypeInt64 {
			return "BIGSERIAL PRIMARY KEY"
		}
		return "SERIAL PRIMARY KEY"
	case dialect.MySQL:
		if t == field.TypeInt64 {
			return "BIGINT AUTO_INCREMENT PRIMARY KEY"
		}
		return "INT AUTO_INCREMENT PRIMARY KEY"
	default:
		// SQLite only accepts AUTOINCREMENT on an INTEGER PRIMARY KEY.
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
}

func columnType(name string, f *field.Descriptor) string {
	switch f.Type {
	case field.TypeInt, field.TypeBool:
		if name == dialect.MySQL {
			return "INT"
		}
		return "INTEGER"
	case field.TypeInt64:
		if name == dialect.SQLite {
			return "INTEGER"
		}
		return "BIGINT"
	case field.TypeFloat:
		switch name {
		case dialect.Postgres:
			return "DOUBLE PRECISION"
		case dialect.MySQL:
			return "DOUBLE"
		default:
			return "REAL"
		}
	case field.TypeString:
		size := f.Size
		if size == 0 {
			size = field.DefaultSize
		}
		return "VARCHAR(" + strconv.Itoa(size) + ")"
	case field.TypeTime:
		if name == dialect.Postgres {
			return "TIMESTAMP"
		}
		return "DATETIME"
	default:
		return "TEXT"
	}
}

func defaultLiteral(f *field.Descriptor) string {
	switch v := f.Default.(type) {
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		if f.Type == field.TypeTime && v == field.Now {
			return "CURRENT_TIMESTAMP"
		}
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	default:
		return "NULL"
	}
}
