package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/vouchly/vouchly-backend/models"
	"gorm.io/gorm"
)

// TestimonialFilter narrows a project-scoped listing. Nil fields match
// everything.
type TestimonialFilter struct {
	IsApproved *bool
	IsFeatured *bool
}

type TestimonialRepo struct {
	db *gorm.DB
}

func NewTestimonialRepo(db *gorm.DB) *TestimonialRepo {
	return &TestimonialRepo{db}
}

// FindByProject returns the testimonials of one project, optionally
// filtered by flag state.
func (r *TestimonialRepo) FindByProject(ctx context.Context, projectID uint, filter TestimonialFilter) ([]*models.Testimonial, error) {
	q := r.db.WithContext(ctx).Where("project_id = ?", projectID)

	if filter.IsApproved != nil {
		q = q.Where("is_approved = ?", *filter.IsApproved)
	}
	if filter.IsFeatured != nil {
		q = q.Where("is_featured = ?", *filter.IsFeatured)
	}

	var testimonials []*models.Testimonial
	err := q.Find(&testimonials).Error
	return testimonials, err
}

// FindByPublicID returns a testimonial by its public identifier.
func (r *TestimonialRepo) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&testimonial).Error
	if err != nil {
		return nil, err
	}
	return &testimonial, nil
}

// Add inserts a new testimonial into the database
func (r *TestimonialRepo) Add(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Create(testimonial).Error
}

// Update updates an existing testimonial in the database
func (r *TestimonialRepo) Update(ctx context.Context, testimonial *models.Testimonial) error {
	return r.db.WithContext(ctx).Save(testimonial).Error
}

// Delete removes a testimonial by id. Association rows cascade; tags are
// untouched.
func (r *TestimonialRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Testimonial{}, id).Error
}
