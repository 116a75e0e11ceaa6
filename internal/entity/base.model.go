package entity

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primary_key"`
	Name       string    `json:"name" gorm:"type:varchar(255);not null"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at" gorm:"autoUpdateTime"`
	Tables     []Table   `json:"tables,omitempty" gorm:"foreignKey:BaseID"`
}
