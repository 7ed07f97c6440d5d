package database

import (
	"github.com/vouchly/vouchly-backend/models"
	"gorm.io/gorm"
)

type Database struct {
	db              *gorm.DB
	userRepo        *UserRepo
	projectRepo     *ProjectRepo
	testimonialRepo *TestimonialRepo
	tagRepo         *TagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:              db,
		userRepo:        NewUserRepo(db),
		projectRepo:     NewProjectRepo(db),
		testimonialRepo: NewTestimonialRepo(db),
		tagRepo:         NewTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) TestimonialRepo() *TestimonialRepo {
	return d.testimonialRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// AutoMigrate creates or updates the schema for every model. The unique
// indexes it creates (user email, project slug, per-project tag name,
// public ids) are the authoritative uniqueness backstop behind the
// application-level pre-checks.
func (d Database) AutoMigrate() error {
	entities := []interface{}{
		&models.User{},
		&models.Project{},
		&models.Testimonial{},
		&models.Tag{},
		&models.TestimonialTag{},
	}

	for _, entity := range entities {
		if err := d.db.AutoMigrate(entity); err != nil {
			return err
		}
	}

	return nil
}
