package models

// TestimonialTag is a pure association row between a testimonial and a tag.
// A row may exist only when both endpoints belong to the same project; that
// invariant is enforced by the reconciliation path, not the schema.
type TestimonialTag struct {
	TestimonialID uint `json:"-" db:"testimonial_id" gorm:"primaryKey;autoIncrement:false"`
	TagID         uint `json:"-" db:"tag_id" gorm:"primaryKey;autoIncrement:false"`

	Testimonial Testimonial `json:"-" gorm:"foreignKey:TestimonialID;references:ID;constraint:OnDelete:CASCADE"`
	Tag         Tag         `json:"-" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}
