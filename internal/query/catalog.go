package query

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FieldInfo is the catalog's view of one field: just enough to synthesize
// the field's join and pick its operators.
type FieldInfo struct {
	ID   uint
	Name string
	Type FieldType
}

// Fields resolves a table's ordered field set, minus the hidden ids.
// Creation order is not tracked separately; ascending id is the stable
// order. A table with no fields yields an empty list, not an error.
func Fields(db *gorm.DB, tableID uuid.UUID, hidden FieldIDSet) ([]FieldInfo, error) {
	q := db.Table("fields").
		Select("fields.id, fields.name, fields.type").
		Where("fields.table_id = ?", tableID).
		Order("fields.id ASC")
	if len(hidden) > 0 {
		q = q.Where("fields.id NOT IN ?", []uint(hidden))
	}

	var fields []FieldInfo
	if err := q.Find(&fields).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve fields for table %s: %w", tableID, err)
	}
	return fields, nil
}
