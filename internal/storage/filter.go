package storage

import (
	"fmt"
	"strings"
)

// Op is a filter comparison operator.
type Op string

const (
	OpEq     Op = "="
	OpGte    Op = ">="
	OpLt     Op = "<"
	OpIsNull Op = "IS NULL"
)

// Cond is a single column condition.
type Cond struct {
	Column string
	Op     Op
	Value  any
}

// Filter is a conjunction of conditions. An empty filter matches every row.
type Filter []Cond

// Eq matches rows whose column equals v.
func Eq(col string, v any) Cond { return Cond{Column: col, Op: OpEq, Value: v} }

// Gte matches rows whose column is >= v.
func Gte(col string, v any) Cond { return Cond{Column: col, Op: OpGte, Value: v} }

// Lt matches rows whose column is < v.
func Lt(col string, v any) Cond { return Cond{Column: col, Op: OpLt, Value: v} }

// IsNull matches rows whose column is NULL.
func IsNull(col string) Cond { return Cond{Column: col, Op: OpIsNull} }

// Where builds a Filter from conditions.
func Where(conds ...Cond) Filter { return Filter(conds) }

// Match evaluates the filter against an in-memory row.
func (f Filter) Match(r Row) bool {
	for _, c := range f {
		v := r[c.Column]
		switch c.Op {
		case OpIsNull:
			if v != nil {
				return false
			}
		case OpEq:
			if v == nil || compare(v, c.Value) != 0 {
				return false
			}
		case OpGte:
			if v == nil || compare(v, c.Value) < 0 {
				return false
			}
		case OpLt:
			if v == nil || compare(v, c.Value) >= 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compare orders two column values. Numbers compare numerically, everything
// else by its string form.
func compare(a, b any) int {
	fa, aNum := number(a)
	fb, bNum := number(b)
	if aNum && bNum {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case int:
		return float64(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
