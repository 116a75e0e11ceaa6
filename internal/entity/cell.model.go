package entity

import "time"

// Cells are hard-deleted: an empty write removes the row outright, so the
// (record_id, field_id) unique index never blocks a later re-create.

type CellText struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RecordID  uint      `json:"record_id" gorm:"not null;uniqueIndex:idx_cell_text_record_field"`
	FieldID   uint      `json:"field_id" gorm:"not null;uniqueIndex:idx_cell_text_record_field;index"`
	Value     string    `json:"value" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CellNumber struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RecordID  uint      `json:"record_id" gorm:"not null;uniqueIndex:idx_cell_number_record_field"`
	FieldID   uint      `json:"field_id" gorm:"not null;uniqueIndex:idx_cell_number_record_field;index"`
	Value     float64   `json:"value" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
