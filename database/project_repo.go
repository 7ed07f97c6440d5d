package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/vouchly/vouchly-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindByOwner returns all projects owned by the given user.
func (r *ProjectRepo) FindByOwner(ctx context.Context, userID uint) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&projects).Error
	return projects, err
}

// FindByPublicID returns a project by its public identifier.
func (r *ProjectRepo) FindByPublicID(ctx context.Context, publicID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("public_id = ?", publicID).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByID returns a project by its internal id.
func (r *ProjectRepo) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugTaken reports whether any project other than excludeID already uses
// slug. Slug uniqueness is global, not tenant-scoped. The unique index on
// slug remains the backstop for the check-then-insert race.
func (r *ProjectRepo) SlugTaken(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("slug = ? AND id <> ?", slug, excludeID).
		Count(&count).Error
	return count > 0, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes a project from the database by id. Testimonials, tags and
// association rows cascade.
func (r *ProjectRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Project{}, id).Error
}
