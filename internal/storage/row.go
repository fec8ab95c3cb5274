package storage

import (
	"fmt"
	"maps"
	"strconv"

	"github.com/google/uuid"
)

// Row is one table row keyed by column name.
// Values are string, float64, int64, bool or nil; drivers may hand back
// close relatives ([]byte, int32), which the accessors normalize.
type Row map[string]any

// Clone returns a shallow copy of r.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	return maps.Clone(r)
}

// String returns the column as a string; nil and missing are "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Float returns the column as a float64; nil and missing are 0.
func (r Row) Float(col string) float64 {
	switch v := r[col].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case int:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	default:
		return 0
	}
}

// Int64 returns the column as an int64; nil and missing are 0.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int32:
		return int64(v)
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		i, _ := strconv.ParseInt(v, 10, 64)
		return i
	case []byte:
		i, _ := strconv.ParseInt(string(v), 10, 64)
		return i
	default:
		return 0
	}
}

// Bool returns the column as a bool and whether it was set at all.
func (r Row) Bool(col string) (value bool, ok bool) {
	switch v := r[col].(type) {
	case nil:
		return false, false
	case bool:
		return v, true
	case int64, int32, int, float64:
		return r.Int64(col) != 0, true
	case string:
		b, err := strconv.ParseBool(v)
		return b, err == nil
	default:
		return false, false
	}
}

// IsNull reports whether the column is nil or missing.
func (r Row) IsNull(col string) bool {
	return r[col] == nil
}

// PrepareInsert clones row and generates an id when none is set.
func PrepareInsert(row Row) Row {
	out := row.Clone()
	if out == nil {
		out = Row{}
	}
	if out.String("id") == "" {
		out["id"] = uuid.New().String()
	}
	return out
}

// NullString maps "" to nil so optional text columns are stored as NULL.
func NullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
