package models

import (
	"time"

	"github.com/google/uuid"
)

// Testimonial is a collected piece of social proof inside a project. The
// author/video/source/sentiment fields are opaque payload persisted as
// received; the two flags are toggled independently of each other.
type Testimonial struct {
	ID       uint      `json:"-" db:"id" gorm:"primaryKey"`
	PublicID uuid.UUID `json:"id" db:"public_id" gorm:"type:uuid;uniqueIndex;not null"`

	ProjectID uint `json:"-" db:"project_id" gorm:"not null;index"`

	Type    string  `json:"type" db:"type" gorm:"column:type;not null;default:text"`
	Content *string `json:"content,omitempty" db:"content" gorm:"type:text"`
	Rating  *int16  `json:"rating,omitempty" db:"rating"`

	AuthorName      string  `json:"author_name" db:"author_name" gorm:"not null"`
	AuthorEmail     *string `json:"author_email,omitempty" db:"author_email"`
	AuthorTitle     *string `json:"author_title,omitempty" db:"author_title"`
	AuthorAvatarURL *string `json:"author_avatar_url,omitempty" db:"author_avatar_url" gorm:"type:text"`
	AuthorCompany   *string `json:"author_company,omitempty" db:"author_company"`
	AuthorURL       *string `json:"author_url,omitempty" db:"author_url" gorm:"type:text"`

	VideoURL             *string `json:"video_url,omitempty" db:"video_url" gorm:"type:text"`
	VideoThumbnailURL    *string `json:"video_thumbnail_url,omitempty" db:"video_thumbnail_url" gorm:"type:text"`
	VideoDurationSeconds *int    `json:"video_duration_seconds,omitempty" db:"video_duration_seconds"`
	Transcription        *string `json:"transcription,omitempty" db:"transcription" gorm:"type:text"`

	Source         *string `json:"source,omitempty" db:"source" gorm:"default:form"`
	SourcePlatform *string `json:"source_platform,omitempty" db:"source_platform"`
	SourceURL      *string `json:"source_url,omitempty" db:"source_url" gorm:"type:text"`
	SourceID       *string `json:"source_id,omitempty" db:"source_id"`

	Sentiment      *string  `json:"sentiment,omitempty" db:"sentiment"`
	SentimentScore *float32 `json:"sentiment_score,omitempty" db:"sentiment_score"`
	Language       *string  `json:"language,omitempty" db:"language"`

	IsApproved bool `json:"is_approved" db:"is_approved" gorm:"not null;default:false;index:idx_testimonials_approved"`
	IsFeatured bool `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
