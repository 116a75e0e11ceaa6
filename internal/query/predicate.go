package query

import (
	"fmt"
	"strconv"
	"strings"
)

// Condition is one compiled filter: a boolean SQL fragment scoped to the
// field's join alias, with every literal carried as a bound argument.
// User-influenced values never appear in Expr itself.
type Condition struct {
	Expr string
	Args []interface{}
}

// compileFilter lowers one filter criterion to a Condition against the
// given join alias. The second return is false when the filter is
// inactive: unknown operator for the field's type, a value-requiring
// operator without a usable value, or an unparseable number literal.
// Inactive filters are skipped, never errors, so stale or half-filled
// view state degrades to "no filter" instead of a failed query.
func compileFilter(f Filter, field FieldInfo, alias string) (Condition, bool) {
	if !f.Op.AppliesTo(field.Type) {
		return Condition{}, false
	}

	var value string
	if f.Op.NeedsValue() {
		if f.Value == nil || *f.Value == "" {
			return Condition{}, false
		}
		value = *f.Value
	}

	switch f.Op {
	case OpGreaterThan, OpLessThan:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Condition{}, false
		}
		cmp := ">"
		if f.Op == OpLessThan {
			cmp = "<"
		}
		// Plain SQL NULL semantics: a record with no cell never
		// satisfies a numeric comparison.
		return Condition{
			Expr: fmt.Sprintf("%s.value %s ?", alias, cmp),
			Args: []interface{}{n},
		}, true

	case OpIs:
		return Condition{
			Expr: fmt.Sprintf("%s.value = ?", alias),
			Args: []interface{}{value},
		}, true

	case OpContains:
		return Condition{
			Expr: fmt.Sprintf("%s.value ILIKE ?", alias),
			Args: []interface{}{"%" + escapeLike(value) + "%"},
		}, true

	case OpDoesNotContain:
		return Condition{
			Expr: fmt.Sprintf("%s.value NOT ILIKE ?", alias),
			Args: []interface{}{"%" + escapeLike(value) + "%"},
		}, true

	case OpIsEmpty:
		// No cell row and an empty-string cell both count as empty.
		return Condition{
			Expr: fmt.Sprintf("(%s.value IS NULL OR %s.value = '')", alias, alias),
		}, true

	case OpIsNotEmpty:
		return Condition{
			Expr: fmt.Sprintf("(%s.value IS NOT NULL AND %s.value <> '')", alias, alias),
		}, true
	}

	return Condition{}, false
}

// escapeLike neutralizes LIKE metacharacters in a user-supplied substring
// so "50%" matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
