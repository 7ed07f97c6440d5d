package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a per-project label. Names are unique within a project only; two
// projects may each have a tag with the same name.
type Tag struct {
	ID        uint      `json:"-" db:"id" gorm:"primaryKey"`
	PublicID  uuid.UUID `json:"id" db:"public_id" gorm:"type:uuid;uniqueIndex;not null"`
	ProjectID uint      `json:"-" db:"project_id" gorm:"not null;index;uniqueIndex:idx_tags_project_name"`
	Name      string    `json:"name" db:"name" gorm:"not null;uniqueIndex:idx_tags_project_name"`
	Color     *string   `json:"color,omitempty" db:"color"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
