package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account owner. The numeric ID is a storage surrogate and never
// leaves the process; PublicID is the only identifier exposed to clients.
type User struct {
	ID           uint      `json:"-" db:"id" gorm:"primaryKey"`
	PublicID     uuid.UUID `json:"id" db:"public_id" gorm:"type:uuid;uniqueIndex;not null"`
	Email        string    `json:"email" db:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"not null"`
	Name         *string   `json:"name,omitempty" db:"name" gorm:"type:text"`
	AvatarURL    *string   `json:"avatar_url,omitempty" db:"avatar_url" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	Projects []Project `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}
