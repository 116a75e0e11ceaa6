package query

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// FieldType is a field's declared scalar type. It decides which cell table
// the field's values are stored in and which filter operators apply.
type FieldType string

const (
	FieldTypeText   FieldType = "Text"
	FieldTypeNumber FieldType = "Number"
)

func (t FieldType) Valid() bool {
	return t == FieldTypeText || t == FieldTypeNumber
}

// Operator is a filter operator. The wire strings match what the grid UI
// persists on the view.
type Operator string

const (
	OpLessThan       Operator = "<"
	OpGreaterThan    Operator = ">"
	OpIs             Operator = "is"
	OpContains       Operator = "contains"
	OpDoesNotContain Operator = "does not contain"
	OpIsEmpty        Operator = "is empty"
	OpIsNotEmpty     Operator = "is not empty"
)

// AppliesTo reports whether the operator is valid for a field of type t.
func (op Operator) AppliesTo(t FieldType) bool {
	switch op {
	case OpLessThan, OpGreaterThan:
		return t == FieldTypeNumber
	case OpIs, OpContains, OpDoesNotContain, OpIsEmpty, OpIsNotEmpty:
		return t == FieldTypeText
	}
	return false
}

// NeedsValue reports whether the operator compares against a literal.
func (op Operator) NeedsValue() bool {
	switch op {
	case OpIsEmpty, OpIsNotEmpty:
		return false
	}
	return true
}

// SortEntry orders records by one field. FieldID is the string-rendered
// numeric field id, as persisted by the grid UI.
type SortEntry struct {
	FieldID string `json:"id"`
	Desc    bool   `json:"desc"`
}

// Filter is one persisted filter criterion. Value is optional: a filter
// whose operator needs a value but has none is inactive, not an error, so
// half-filled filter rows in the UI never break the query.
type Filter struct {
	FieldID string   `json:"id"`
	Op      Operator `json:"type"`
	Value   *string  `json:"value,omitempty"`
}

// ParseFieldID resolves the string-rendered field id. A non-numeric id is
// a dangling reference and reported as not-ok.
func ParseFieldID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// SortList and FilterList are stored on the view as jsonb.

type SortList []SortEntry

type FilterList []Filter

// FieldIDSet is the view's hidden-field set, stored as a jsonb array of
// numeric field ids.
type FieldIDSet []uint

func (s FieldIDSet) Contains(id uint) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

func (s SortList) Value() (driver.Value, error)   { return jsonValue(s) }
func (s *SortList) Scan(src interface{}) error    { return jsonScan(src, s) }
func (f FilterList) Value() (driver.Value, error) { return jsonValue(f) }
func (f *FilterList) Scan(src interface{}) error  { return jsonScan(src, f) }
func (s FieldIDSet) Value() (driver.Value, error) { return jsonValue(s) }
func (s *FieldIDSet) Scan(src interface{}) error  { return jsonScan(src, s) }

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal criteria: %w", err)
	}
	return string(b), nil
}

func jsonScan(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported criteria column type %T", src)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("failed to unmarshal criteria: %w", err)
	}
	return nil
}
