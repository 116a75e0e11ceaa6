package entity

import (
	"time"

	"github.com/eoru5/airytable/internal/query"
	"github.com/google/uuid"
)

// View is a saved sort/filter/hidden-field configuration over a table.
// The criteria columns are stored as jsonb and loaded straight into the
// query engine's criteria types.
type View struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Name         string           `json:"name" gorm:"type:varchar(255);not null"`
	TableID      uuid.UUID        `json:"table_id" gorm:"type:uuid;not null;index"`
	Sort         query.SortList   `json:"sort" gorm:"type:jsonb;not null;default:'[]'"`
	Filters      query.FilterList `json:"filters" gorm:"type:jsonb;not null;default:'[]'"`
	HiddenFields query.FieldIDSet `json:"hidden_fields" gorm:"type:jsonb;not null;default:'[]'"`
	CreatedAt    time.Time        `json:"created_at"`
	ModifiedAt   time.Time        `json:"modified_at" gorm:"autoUpdateTime"`
}
