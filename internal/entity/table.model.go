package entity

import (
	"time"

	"github.com/google/uuid"
)

type Table struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null;uniqueIndex:idx_table_name_base"`
	BaseID     uuid.UUID `json:"base_id" gorm:"type:uuid;not null;uniqueIndex:idx_table_name_base"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at" gorm:"autoUpdateTime"`
	Fields     []Field   `json:"fields,omitempty" gorm:"foreignKey:TableID"`
	Views      []View    `json:"views,omitempty" gorm:"foreignKey:TableID"`
}
