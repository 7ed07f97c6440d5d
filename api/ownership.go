package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/vouchly/vouchly-backend/database"
	"github.com/vouchly/vouchly-backend/errs"
	"github.com/vouchly/vouchly-backend/models"
)

// ownershipGuard walks the ownership chain of a path entity up to its user
// and decides access. The order is fixed: a public id that does not resolve
// is not found; a resolvable entity whose chain ends at another user is
// forbidden. Malformed ids count as unresolvable.
type ownershipGuard struct {
	projects     *database.ProjectRepo
	testimonials *database.TestimonialRepo
	tags         *database.TagRepo
}

func newOwnershipGuard(database database.Database) ownershipGuard {
	return ownershipGuard{
		projects:     database.ProjectRepo(),
		testimonials: database.TestimonialRepo(),
		tags:         database.TagRepo(),
	}
}

func (g ownershipGuard) requireProject(ctx context.Context, publicID string, callerID uint) (*models.Project, error) {
	pid, err := uuid.Parse(publicID)
	if err != nil {
		return nil, errs.NewNotFound("project")
	}

	project, err := g.projects.FindByPublicID(ctx, pid)
	if err != nil {
		return nil, errs.FromDatabase("find", "project", err)
	}

	if project.UserID != callerID {
		return nil, errs.NewForbidden("project belongs to another user")
	}

	return project, nil
}

// requireTestimonial needs one extra hop: testimonial to project to user.
// It returns the owning project alongside since every caller needs it for
// response shaping.
func (g ownershipGuard) requireTestimonial(ctx context.Context, publicID string, callerID uint) (*models.Testimonial, *models.Project, error) {
	pid, err := uuid.Parse(publicID)
	if err != nil {
		return nil, nil, errs.NewNotFound("testimonial")
	}

	testimonial, err := g.testimonials.FindByPublicID(ctx, pid)
	if err != nil {
		return nil, nil, errs.FromDatabase("find", "testimonial", err)
	}

	project, err := g.projects.FindByID(ctx, testimonial.ProjectID)
	if err != nil {
		return nil, nil, errs.FromDatabase("find", "project", err)
	}

	if project.UserID != callerID {
		return nil, nil, errs.NewForbidden("testimonial belongs to another user")
	}

	return testimonial, project, nil
}

func (g ownershipGuard) requireTag(ctx context.Context, publicID string, callerID uint) (*models.Tag, *models.Project, error) {
	pid, err := uuid.Parse(publicID)
	if err != nil {
		return nil, nil, errs.NewNotFound("tag")
	}

	tag, err := g.tags.FindByPublicID(ctx, pid)
	if err != nil {
		return nil, nil, errs.FromDatabase("find", "tag", err)
	}

	project, err := g.projects.FindByID(ctx, tag.ProjectID)
	if err != nil {
		return nil, nil, errs.FromDatabase("find", "project", err)
	}

	if project.UserID != callerID {
		return nil, nil, errs.NewForbidden("tag belongs to another user")
	}

	return tag, project, nil
}
