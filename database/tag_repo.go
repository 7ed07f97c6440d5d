package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/vouchly/vouchly-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindByProject returns all tags of one project.
func (r *TagRepo) FindByProject(ctx context.Context, projectID uint) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Find(&tags).Error
	return tags, err
}

// FindByPublicID returns a tag by its public identifier.
func (r *TagRepo) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// NameTaken reports whether a tag other than excludeID already uses name
// inside the given project. Tag names are unique per project only; the
// composite unique index is the backstop.
func (r *TagRepo) NameTaken(ctx context.Context, projectID uint, name string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Tag{}).
		Where("project_id = ? AND name = ? AND id <> ?", projectID, name, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

// Update updates an existing tag in the database
func (r *TagRepo) Update(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete removes a tag by id. Association rows cascade.
func (r *TagRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Tag{}, id).Error
}

// ForTestimonial returns the tags currently associated with one testimonial.
func (r *TagRepo) ForTestimonial(ctx context.Context, testimonialID uint) ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN testimonial_tags ON testimonial_tags.tag_id = tags.id").
		Where("testimonial_tags.testimonial_id = ?", testimonialID).
		Find(&tags).Error
	return tags, err
}

// ForTestimonials returns the tags of many testimonials at once, keyed by
// testimonial internal id. Testimonials without tags are absent from the map.
func (r *TagRepo) ForTestimonials(ctx context.Context, testimonialIDs []uint) (map[uint][]*models.Tag, error) {
	result := make(map[uint][]*models.Tag)
	if len(testimonialIDs) == 0 {
		return result, nil
	}

	var links []models.TestimonialTag
	if err := r.db.WithContext(ctx).Where("testimonial_id IN ?", testimonialIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return result, nil
	}

	tagIDs := make([]uint, 0, len(links))
	for _, link := range links {
		tagIDs = append(tagIDs, link.TagID)
	}

	var tags []*models.Tag
	if err := r.db.WithContext(ctx).Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}

	for _, link := range links {
		if tag, ok := byID[link.TagID]; ok {
			result[link.TestimonialID] = append(result[link.TestimonialID], tag)
		}
	}

	return result, nil
}

// ReplaceForTestimonial swaps the full association set of one testimonial
// for tagIDs. Delete and insert run in a single transaction: a failure in
// between rolls everything back, so a partial tag set is never observable.
// Replacing with an empty set clears all associations.
func (r *TagRepo) ReplaceForTestimonial(ctx context.Context, testimonialID uint, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("testimonial_id = ?", testimonialID).Delete(&models.TestimonialTag{}).Error; err != nil {
			return err
		}

		if len(tagIDs) == 0 {
			return nil
		}

		links := make([]models.TestimonialTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, models.TestimonialTag{
				TestimonialID: testimonialID,
				TagID:         tagID,
			})
		}

		return tx.Omit(clause.Associations).Create(&links).Error
	})
}
