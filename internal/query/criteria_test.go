package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperatorAppliesTo(t *testing.T) {
	assert.True(t, OpGreaterThan.AppliesTo(FieldTypeNumber))
	assert.True(t, OpLessThan.AppliesTo(FieldTypeNumber))
	assert.False(t, OpGreaterThan.AppliesTo(FieldTypeText))

	for _, op := range []Operator{OpIs, OpContains, OpDoesNotContain, OpIsEmpty, OpIsNotEmpty} {
		assert.True(t, op.AppliesTo(FieldTypeText), string(op))
		assert.False(t, op.AppliesTo(FieldTypeNumber), string(op))
	}

	assert.False(t, Operator("between").AppliesTo(FieldTypeNumber))
}

func TestOperatorNeedsValue(t *testing.T) {
	assert.True(t, OpGreaterThan.NeedsValue())
	assert.True(t, OpIs.NeedsValue())
	assert.True(t, OpContains.NeedsValue())
	assert.False(t, OpIsEmpty.NeedsValue())
	assert.False(t, OpIsNotEmpty.NeedsValue())
}

func TestParseFieldID(t *testing.T) {
	id, ok := ParseFieldID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	_, ok = ParseFieldID("")
	assert.False(t, ok)
	_, ok = ParseFieldID("name")
	assert.False(t, ok)
	_, ok = ParseFieldID("-1")
	assert.False(t, ok)
}

func TestCriteriaJSONRoundTrip(t *testing.T) {
	value := "10"
	filters := FilterList{
		{FieldID: "3", Op: OpGreaterThan, Value: &value},
		{FieldID: "4", Op: OpIsEmpty},
	}

	raw, err := filters.Value()
	require.NoError(t, err)

	var decoded FilterList
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, filters, decoded)

	sort := SortList{{FieldID: "3", Desc: true}, {FieldID: "4"}}
	raw, err = sort.Value()
	require.NoError(t, err)

	var decodedSort SortList
	require.NoError(t, decodedSort.Scan([]byte(raw.(string))))
	assert.Equal(t, sort, decodedSort)
}

func TestCriteriaScanNull(t *testing.T) {
	var sort SortList
	require.NoError(t, sort.Scan(nil))
	assert.Empty(t, sort)

	var hidden FieldIDSet
	require.NoError(t, hidden.Scan([]byte(`[1,2,3]`)))
	assert.True(t, hidden.Contains(2))
	assert.False(t, hidden.Contains(4))
}
