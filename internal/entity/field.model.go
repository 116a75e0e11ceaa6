package entity

import (
	"time"

	"github.com/eoru5/airytable/internal/query"
	"github.com/google/uuid"
)

// Field is a typed column definition. Type is immutable after creation:
// it decides which cell table the field's values live in.
type Field struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"type:varchar(255);not null"`
	Type      query.FieldType `json:"type" gorm:"type:varchar(16);not null"`
	TableID   uuid.UUID       `json:"table_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time       `json:"created_at"`
}
