package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCompileNumberComparisons(t *testing.T) {
	field := FieldInfo{ID: 7, Name: "Score", Type: FieldTypeNumber}

	cond, ok := compileFilter(Filter{FieldID: "7", Op: OpGreaterThan, Value: strPtr("4")}, field, "f7")
	require.True(t, ok)
	assert.Equal(t, "f7.value > ?", cond.Expr)
	assert.Equal(t, []interface{}{4.0}, cond.Args)

	cond, ok = compileFilter(Filter{FieldID: "7", Op: OpLessThan, Value: strPtr("2.5")}, field, "f7")
	require.True(t, ok)
	assert.Equal(t, "f7.value < ?", cond.Expr)
	assert.Equal(t, []interface{}{2.5}, cond.Args)
}

func TestCompileTextOperators(t *testing.T) {
	field := FieldInfo{ID: 3, Name: "Name", Type: FieldTypeText}

	cond, ok := compileFilter(Filter{FieldID: "3", Op: OpIs, Value: strPtr("Alice")}, field, "f3")
	require.True(t, ok)
	assert.Equal(t, "f3.value = ?", cond.Expr)
	assert.Equal(t, []interface{}{"Alice"}, cond.Args)

	cond, ok = compileFilter(Filter{FieldID: "3", Op: OpContains, Value: strPtr("li")}, field, "f3")
	require.True(t, ok)
	assert.Equal(t, "f3.value ILIKE ?", cond.Expr)
	assert.Equal(t, []interface{}{"%li%"}, cond.Args)

	cond, ok = compileFilter(Filter{FieldID: "3", Op: OpDoesNotContain, Value: strPtr("li")}, field, "f3")
	require.True(t, ok)
	assert.Equal(t, "f3.value NOT ILIKE ?", cond.Expr)
	assert.Equal(t, []interface{}{"%li%"}, cond.Args)

	cond, ok = compileFilter(Filter{FieldID: "3", Op: OpIsEmpty}, field, "f3")
	require.True(t, ok)
	assert.Equal(t, "(f3.value IS NULL OR f3.value = '')", cond.Expr)
	assert.Empty(t, cond.Args)

	cond, ok = compileFilter(Filter{FieldID: "3", Op: OpIsNotEmpty}, field, "f3")
	require.True(t, ok)
	assert.Equal(t, "(f3.value IS NOT NULL AND f3.value <> '')", cond.Expr)
	assert.Empty(t, cond.Args)
}

func TestCompileEscapesLikeMetacharacters(t *testing.T) {
	field := FieldInfo{ID: 3, Name: "Name", Type: FieldTypeText}

	cond, ok := compileFilter(Filter{FieldID: "3", Op: OpContains, Value: strPtr("50%_\\")}, field, "f3")
	require.True(t, ok)
	assert.Equal(t, []interface{}{`%50\%\_\\%`}, cond.Args)
}

func TestCompileInactiveFilters(t *testing.T) {
	number := FieldInfo{ID: 7, Name: "Score", Type: FieldTypeNumber}
	text := FieldInfo{ID: 3, Name: "Name", Type: FieldTypeText}

	// value-requiring operator without a value
	_, ok := compileFilter(Filter{FieldID: "7", Op: OpGreaterThan}, number, "f7")
	assert.False(t, ok)
	_, ok = compileFilter(Filter{FieldID: "7", Op: OpGreaterThan, Value: strPtr("")}, number, "f7")
	assert.False(t, ok)
	_, ok = compileFilter(Filter{FieldID: "3", Op: OpContains, Value: strPtr("")}, text, "f3")
	assert.False(t, ok)

	// unparseable number literal
	_, ok = compileFilter(Filter{FieldID: "7", Op: OpLessThan, Value: strPtr("ten")}, number, "f7")
	assert.False(t, ok)

	// operator from the wrong type's set
	_, ok = compileFilter(Filter{FieldID: "7", Op: OpContains, Value: strPtr("x")}, number, "f7")
	assert.False(t, ok)
	_, ok = compileFilter(Filter{FieldID: "3", Op: OpGreaterThan, Value: strPtr("1")}, text, "f3")
	assert.False(t, ok)

	// unknown operator
	_, ok = compileFilter(Filter{FieldID: "3", Op: Operator("startswith"), Value: strPtr("x")}, text, "f3")
	assert.False(t, ok)
}
