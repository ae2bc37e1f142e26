package sql

import (
	"fmt"
	"strconv"
	"time"
)

// Row is a single result row addressable by column name.
type Row struct {
	columns []string
	values  map[string]any
}

// NewRow returns a Row for the given columns and values. On duplicate
// column names the first occurrence wins.
func NewRow(columns []string, values []any) *Row {
	r := &Row{columns: columns, values: make(map[string]any, len(columns))}
	for i, c := range columns {
		if _, ok := r.values[c]; ok || i >= len(values) {
			continue
		}
		r.values[c] = values[i]
	}
	return r
}

// Columns returns the column names of the row.
func (r *Row) Columns() []string { return r.columns }

// Value returns the raw driver value of the column.
func (r *Row) Value(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

func (r *Row) lookup(column string) (any, error) {
	v, ok := r.values[column]
	if !ok {
		return nil, &DeserializationError{Column: column, Err: fmt.Errorf("column not found")}
	}
	return v, nil
}

// Int64 returns the column as an int64. NULL yields 0.
func (r *Row) Int64(column string) (int64, error) {
	v, err := r.lookup(column)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case []byte:
		return r.parseInt(column, string(v))
	case string:
		return r.parseInt(column, v)
	default:
		return 0, &DeserializationError{Column: column, Err: fmt.Errorf("cannot convert %T to int64", v)}
	}
}

// Int returns the column as an int. NULL yields 0.
func (r *Row) Int(column string) (int, error) {
	n, err := r.Int64(column)
	return int(n), err
}

// Bool returns the column as a bool. Integer columns are true when non-zero.
func (r *Row) Bool(column string) (bool, error) {
	v, err := r.lookup(column)
	if err != nil {
		return false, err
	}
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if b, ok := v.([]byte); ok {
		if pb, err := strconv.ParseBool(string(b)); err == nil {
			return pb, nil
		}
	}
	n, err := r.Int64(column)
	return n != 0, err
}

// Float64 returns the column as a float64. NULL yields 0.
func (r *Row) Float64(column string) (float64, error) {
	v, err := r.lookup(column)
	if err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case []byte:
		return r.parseFloat(column, string(v))
	case string:
		return r.parseFloat(column, v)
	default:
		return 0, &DeserializationError{Column: column, Err: fmt.Errorf("cannot convert %T to float64", v)}
	}
}

// String returns the column as a string. Time values are formatted as
// RFC 3339. NULL yields "".
func (r *Row) String(column string) (string, error) {
	v, err := r.lookup(column)
	if err != nil {
		return "", err
	}
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case time.Time:
		return v.Format(time.RFC3339), nil
	default:
		return "", &DeserializationError{Column: column, Err: fmt.Errorf("cannot convert %T to string", v)}
	}
}

func (r *Row) parseInt(column, s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &DeserializationError{Column: column, Err: err}
	}
	return n, nil
}

func (r *Row) parseFloat(column, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &DeserializationError{Column: column, Err: err}
	}
	return f, nil
}

// ScanRows reads every remaining row of rows. It does not close rows.
func ScanRows(rows ColumnScanner) ([]*Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	var out []*Row
	for rows.Next() {
		values := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, NewRow(columns, values))
	}
	return out, rows.Err()
}
