package query

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound means the table/view doesn't exist or isn't owned by the
// requesting user. Cross-tenant reads fail loudly instead of returning an
// empty page.
var ErrNotFound = errors.New("table or view not found")

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
)

// Page is one page of view-query results.
type Page struct {
	Records    []RecordData `json:"records"`
	NextCursor *int         `json:"nextCursor,omitempty"`
}

// viewCriteria is the persisted view state the planner consults, loaded in
// the same query that proves the ownership chain.
type viewCriteria struct {
	ID           uuid.UUID
	TableID      uuid.UUID
	Sort         SortList
	Filters      FilterList
	HiddenFields FieldIDSet
}

// ListRecords runs the view query for one page: resolves the visible field
// set, synthesizes one left join per field against its type's cell table,
// applies the view's filters and sort plus an ascending record-id
// tie-break, and paginates by offset. It fetches pageSize+1 rows so a next
// page is detected without a count query.
func ListRecords(ctx context.Context, db *gorm.DB, userID, tableID, viewID uuid.UUID, cursor, pageSize int) (*Page, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if cursor < 0 {
		cursor = 0
	}

	view, err := loadView(ctx, db, userID, tableID, viewID)
	if err != nil {
		return nil, err
	}

	fields, err := Fields(db.WithContext(ctx), tableID, view.HiddenFields)
	if err != nil {
		return nil, err
	}

	q := db.WithContext(ctx).Table("records").
		Where("records.table_id = ?", tableID)

	selects := []string{"records.id AS record_id"}
	joined := make([]FieldInfo, 0, len(fields))
	visible := make(map[uint]FieldInfo, len(fields))
	for _, f := range fields {
		table, ok := cellTable(f.Type)
		if !ok {
			continue
		}
		alias := fieldAlias(f.ID)
		// The alias and join key are derived from the numeric field id;
		// only the id value itself is bound as a parameter.
		q = q.Joins(fmt.Sprintf(
			"LEFT JOIN %s %s ON %s.record_id = records.id AND %s.field_id = ?",
			table, alias, alias, alias), f.ID)
		selects = append(selects, fmt.Sprintf("%s.value AS %s_value", alias, alias))
		joined = append(joined, f)
		visible[f.ID] = f
	}
	q = q.Select(strings.Join(selects, ", "))

	// Filters combine with AND; entries referencing hidden or deleted
	// fields were already excluded from the visible set and drop out here.
	for _, f := range view.Filters {
		id, ok := ParseFieldID(f.FieldID)
		if !ok {
			continue
		}
		field, ok := visible[id]
		if !ok {
			continue
		}
		cond, ok := compileFilter(f, field, fieldAlias(id))
		if !ok {
			continue
		}
		q = q.Where(cond.Expr, cond.Args...)
	}

	for _, s := range view.Sort {
		id, ok := ParseFieldID(s.FieldID)
		if !ok {
			continue
		}
		if _, ok := visible[id]; !ok {
			continue
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		q = q.Order(fmt.Sprintf("%s.value %s", fieldAlias(id), dir))
	}
	// Deterministic tie-break so pages never overlap or skip records,
	// even with duplicate sort-key values.
	q = q.Order("records.id ASC")

	rows, err := q.Limit(pageSize + 1).Offset(cursor).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	records, err := materialize(rows, joined)
	if err != nil {
		return nil, err
	}

	page := &Page{Records: records}
	if len(records) > pageSize {
		page.Records = records[:pageSize]
		next := cursor + pageSize
		page.NextCursor = &next
	}
	return page, nil
}

// loadView fetches the view's criteria while proving the ownership chain
// view -> table -> base -> user in one query. Any break in the chain is a
// NotFound, indistinguishable from a missing view.
func loadView(ctx context.Context, db *gorm.DB, userID, tableID, viewID uuid.UUID) (*viewCriteria, error) {
	var view viewCriteria
	err := db.WithContext(ctx).Table("views").
		Select("views.id, views.table_id, views.sort, views.filters, views.hidden_fields").
		Joins("JOIN tables ON tables.id = views.table_id").
		Joins("JOIN bases ON bases.id = tables.base_id").
		Where("views.id = ? AND views.table_id = ? AND bases.user_id = ?", viewID, tableID, userID).
		Take(&view).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load view %s: %w", viewID, err)
	}
	return &view, nil
}

// cellTable maps a field type to the side table its cells live in.
func cellTable(t FieldType) (string, bool) {
	switch t {
	case FieldTypeText:
		return "cell_texts", true
	case FieldTypeNumber:
		return "cell_numbers", true
	}
	return "", false
}

// fieldAlias is the per-field join alias. Formatting a uint keeps the
// alias outside user control.
func fieldAlias(fieldID uint) string {
	return fmt.Sprintf("f%d", fieldID)
}
