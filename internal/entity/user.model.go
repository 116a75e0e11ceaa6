package entity

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email          string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Name           string    `json:"name" gorm:"type:varchar(100)"`
	ProfilePicture string    `json:"profile_picture" gorm:"type:varchar(255)"`
	CreatedAt      time.Time `json:"created_at"`
	Bases          []Base    `json:"bases,omitempty" gorm:"foreignKey:UserID"`
}
