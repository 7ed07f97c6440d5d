package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the unit of tenancy: every testimonial and tag belongs to
// exactly one project, and every project to exactly one user. Slugs are
// unique across all tenants.
type Project struct {
	ID         uint      `json:"-" db:"id" gorm:"primaryKey"`
	PublicID   uuid.UUID `json:"id" db:"public_id" gorm:"type:uuid;uniqueIndex;not null"`
	UserID     uint      `json:"-" db:"user_id" gorm:"not null;index"`
	Name       string    `json:"name" db:"name" gorm:"not null"`
	Slug       string    `json:"slug" db:"slug" gorm:"uniqueIndex;not null"`
	LogoURL    *string   `json:"logo_url,omitempty" db:"logo_url" gorm:"type:text"`
	WebsiteURL *string   `json:"website_url,omitempty" db:"website_url" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	Testimonials []Testimonial `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
	Tags         []Tag         `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}
