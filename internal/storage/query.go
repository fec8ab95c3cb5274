package storage

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Placeholder renders the n-th (1-based) bind parameter of a dialect.
type Placeholder func(n int) string

// QuestionMark is the SQLite placeholder.
func QuestionMark(int) string { return "?" }

// Dollar is the PostgreSQL placeholder.
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

// SelectSQL builds a SELECT of every schema column of table.
func SelectSQL(table string, filter Filter, ph Placeholder) (string, []any, error) {
	if err := CheckFilter(table, filter); err != nil {
		return "", nil, err
	}
	cols := lo.Map(Schema[table], func(c string, _ int) string { return quote(c) })
	where, args := whereSQL(filter, ph, 1)
	return fmt.Sprintf("SELECT %s FROM %s%s", strings.Join(cols, ", "), quote(table), where), args, nil
}

// InsertSQL builds an INSERT of row into table. Columns are emitted sorted.
func InsertSQL(table string, row Row, ph Placeholder) (string, []any, error) {
	if err := CheckColumns(table, row); err != nil {
		return "", nil, err
	}
	names := sortedKeys(row)
	cols := make([]string, len(names))
	marks := make([]string, len(names))
	args := make([]any, len(names))
	for i, name := range names {
		cols[i] = quote(name)
		marks[i] = ph(i + 1)
		args[i] = row[name]
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quote(table), strings.Join(cols, ", "), strings.Join(marks, ", "),
	), args, nil
}

// UpdateSQL builds an UPDATE applying patch to the rows matching filter.
func UpdateSQL(table string, filter Filter, patch Row, ph Placeholder) (string, []any, error) {
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("empty patch for %s", table)
	}
	if err := CheckColumns(table, patch); err != nil {
		return "", nil, err
	}
	if err := CheckFilter(table, filter); err != nil {
		return "", nil, err
	}
	names := sortedKeys(patch)
	sets := make([]string, len(names))
	args := make([]any, 0, len(names)+len(filter))
	for i, name := range names {
		sets[i] = fmt.Sprintf("%s = %s", quote(name), ph(i+1))
		args = append(args, patch[name])
	}
	where, whereArgs := whereSQL(filter, ph, len(names)+1)
	args = append(args, whereArgs...)
	return fmt.Sprintf("UPDATE %s SET %s%s", quote(table), strings.Join(sets, ", "), where), args, nil
}

// DeleteSQL builds a DELETE of the rows matching filter.
func DeleteSQL(table string, filter Filter, ph Placeholder) (string, []any, error) {
	if err := CheckFilter(table, filter); err != nil {
		return "", nil, err
	}
	where, args := whereSQL(filter, ph, 1)
	return fmt.Sprintf("DELETE FROM %s%s", quote(table), where), args, nil
}

func whereSQL(filter Filter, ph Placeholder, start int) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(filter))
	var args []any
	n := start
	for _, c := range filter {
		if c.Op == OpIsNull {
			parts = append(parts, quote(c.Column)+" IS NULL")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s %s", quote(c.Column), c.Op, ph(n)))
		args = append(args, c.Value)
		n++
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func sortedKeys(row Row) []string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// quote double-quotes an identifier. Identifiers are checked against Schema
// before they get here.
func quote(ident string) string {
	return `"` + ident + `"`
}
