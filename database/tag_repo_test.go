package database

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vouchly/vouchly-backend/models"
)

func newTestDatabase(t *testing.T) Database {
	t.Helper()

	// foreign_keys must be switched on per connection or SQLite ignores the
	// ON DELETE CASCADE constraints the schema declares.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	db := New(gdb)
	require.NoError(t, db.AutoMigrate())
	return db
}

// seedProject creates a user, a project under it, and a testimonial inside
// that project, returning the pieces tests need most.
func seedProject(t *testing.T, db Database, slug string) (*models.Project, *models.Testimonial) {
	t.Helper()
	ctx := context.Background()

	user := models.User{
		PublicID:     uuid.New(),
		Email:        slug + "@example.com",
		PasswordHash: "irrelevant",
	}
	require.NoError(t, db.UserRepo().Add(ctx, &user))

	project := models.Project{
		PublicID: uuid.New(),
		UserID:   user.ID,
		Name:     "Project " + slug,
		Slug:     slug,
	}
	require.NoError(t, db.ProjectRepo().Add(ctx, &project))

	testimonial := models.Testimonial{
		PublicID:   uuid.New(),
		ProjectID:  project.ID,
		Type:       "text",
		AuthorName: "Jane Doe",
	}
	require.NoError(t, db.TestimonialRepo().Add(ctx, &testimonial))

	return &project, &testimonial
}

func seedTag(t *testing.T, db Database, projectID uint, name string) *models.Tag {
	t.Helper()

	tag := models.Tag{
		PublicID:  uuid.New(),
		ProjectID: projectID,
		Name:      name,
	}
	require.NoError(t, db.TagRepo().Add(context.Background(), &tag))
	return &tag
}

func tagNames(tags []*models.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	return names
}

func TestReplaceForTestimonial(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project, testimonial := seedProject(t, db, "acme")
	a := seedTag(t, db, project.ID, "a")
	b := seedTag(t, db, project.ID, "b")
	c := seedTag(t, db, project.ID, "c")

	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, testimonial.ID, []uint{a.ID, b.ID}))

	tags, err := db.TagRepo().ForTestimonial(ctx, testimonial.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, tagNames(tags))

	// Replacing swaps the whole set, it does not append.
	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, testimonial.ID, []uint{b.ID, c.ID}))

	tags, err = db.TagRepo().ForTestimonial(ctx, testimonial.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"b", "c"}, tagNames(tags))
}

func TestReplaceForTestimonialEmptyClears(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project, testimonial := seedProject(t, db, "acme")
	a := seedTag(t, db, project.ID, "a")

	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, testimonial.ID, []uint{a.ID}))
	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, testimonial.ID, nil))

	tags, err := db.TagRepo().ForTestimonial(ctx, testimonial.ID)
	require.NoError(t, err)
	require.Empty(t, tags)
}

func TestReplaceForTestimonialIdempotent(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project, testimonial := seedProject(t, db, "acme")
	a := seedTag(t, db, project.ID, "a")

	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, testimonial.ID, []uint{a.ID}))
	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, testimonial.ID, []uint{a.ID}))

	tags, err := db.TagRepo().ForTestimonial(ctx, testimonial.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
}

func TestForTestimonialsBatch(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project, first := seedProject(t, db, "acme")
	second := models.Testimonial{
		PublicID:   uuid.New(),
		ProjectID:  project.ID,
		Type:       "text",
		AuthorName: "John Smith",
	}
	require.NoError(t, db.TestimonialRepo().Add(ctx, &second))

	a := seedTag(t, db, project.ID, "a")
	b := seedTag(t, db, project.ID, "b")

	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, first.ID, []uint{a.ID, b.ID}))
	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, second.ID, []uint{b.ID}))

	byTestimonial, err := db.TagRepo().ForTestimonials(ctx, []uint{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, byTestimonial[first.ID], 2)
	require.Len(t, byTestimonial[second.ID], 1)
	require.Equal(t, "b", byTestimonial[second.ID][0].Name)
}

func TestForTestimonialsEmptyInput(t *testing.T) {
	db := newTestDatabase(t)

	byTestimonial, err := db.TagRepo().ForTestimonials(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, byTestimonial)
}

// The composite unique index on (project_id, name) rejects a duplicate the
// pre-check missed, surfacing as gorm.ErrDuplicatedKey.
func TestTagUniqueIndexBackstop(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project, _ := seedProject(t, db, "acme")
	seedTag(t, db, project.ID, "favorite")

	duplicate := models.Tag{
		PublicID:  uuid.New(),
		ProjectID: project.ID,
		Name:      "favorite",
	}
	err := db.TagRepo().Add(ctx, &duplicate)
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

// Deleting a tag must also remove its association rows, not just hide them
// behind the join.
func TestDeleteTagCascadesLinks(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project, testimonial := seedProject(t, db, "acme")
	tag := seedTag(t, db, project.ID, "favorite")
	require.NoError(t, db.TagRepo().ReplaceForTestimonial(ctx, testimonial.ID, []uint{tag.ID}))

	require.NoError(t, db.TagRepo().Delete(ctx, tag.ID))

	var links int64
	require.NoError(t, db.db.Model(&models.TestimonialTag{}).Where("tag_id = ?", tag.ID).Count(&links).Error)
	require.Zero(t, links)
}

func TestNameTakenExcludesSelf(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	project, _ := seedProject(t, db, "acme")
	tag := seedTag(t, db, project.ID, "favorite")

	taken, err := db.TagRepo().NameTaken(ctx, project.ID, "favorite", tag.ID)
	require.NoError(t, err)
	require.False(t, taken)

	taken, err = db.TagRepo().NameTaken(ctx, project.ID, "favorite", 0)
	require.NoError(t, err)
	require.True(t, taken)
}
