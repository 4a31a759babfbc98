package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one tuple as returned by the database. Values keep the driver's
// scalar types so they can be bound back verbatim; Cells is their uniform
// text rendering.
type Row struct {
	Values []any
	Cells  []string
}

// FormatValue renders a scanned scalar as text. NULL renders as "".
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		s := strconv.FormatFloat(t, 'f', -1, 64)
		if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") && !strings.Contains(s, "NaN") {
			s += ".0"
		}
		return s
	case bool:
		if t {
			return "1"
		}
		return "0"
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format(time.DateOnly)
		}
		return t.Format(time.DateTime)
	default:
		return fmt.Sprint(t)
	}
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	out := []Row{}
	for rows.Next() {
		values := make([]any, len(cols))
		pointers := make([]any, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		row := Row{Values: make([]any, len(cols)), Cells: make([]string, len(cols))}
		for i, val := range values {
			// []byte is reused by the driver between rows
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row.Values[i] = val
			row.Cells[i] = FormatValue(val)
		}
		out = append(out, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}
