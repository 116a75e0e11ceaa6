package entity

import (
	"time"

	"github.com/google/uuid"
)

// Record is a row identity. It carries no inline values, only sparse
// cell associations in cell_texts and cell_numbers.
type Record struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	TableID   uuid.UUID `json:"table_id" gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `json:"created_at"`
}
