package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/vouchly/vouchly-backend/models"
)

func TestCreateTag(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")

	color := "#ff0000"
	rec := env.do(t, http.MethodPost, "/api/v1/projects/"+project.ID+"/tags", owner.Token, createTagRequest{
		Name:  "favorite",
		Color: &color,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody[tagResponse](t, rec)
	require.Equal(t, "favorite", resp.Name)
	require.Equal(t, project.ID, resp.ProjectID)
	require.NotNil(t, resp.Color)
	require.Equal(t, color, *resp.Color)
}

// Tag names are unique per project, not globally.
func TestCreateTagDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	first := env.createProject(t, owner.Token, "first")
	second := env.createProject(t, owner.Token, "second")

	env.createTag(t, owner.Token, first.ID, "favorite")

	rec := env.do(t, http.MethodPost, "/api/v1/projects/"+first.ID+"/tags", owner.Token, createTagRequest{Name: "favorite"})
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/projects/"+second.ID+"/tags", owner.Token, createTagRequest{Name: "favorite"})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestListTags(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")

	env.createTag(t, owner.Token, project.ID, "favorite")
	env.createTag(t, owner.Token, project.ID, "video")

	rec := env.do(t, http.MethodGet, "/api/v1/projects/"+project.ID+"/tags", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	tags := decodeBody[[]tagResponse](t, rec)
	require.Len(t, tags, 2)
}

func TestUpdateTag(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	tag := env.createTag(t, owner.Token, project.ID, "favorite")

	name := "starred"
	rec := env.do(t, http.MethodPut, "/api/v1/tags/"+tag.ID, owner.Token, updateTagRequest{Name: &name})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[tagResponse](t, rec)
	require.Equal(t, "starred", resp.Name)
}

func TestUpdateTagNameConflict(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	env.createTag(t, owner.Token, project.ID, "favorite")
	other := env.createTag(t, owner.Token, project.ID, "video")

	name := "favorite"
	rec := env.do(t, http.MethodPut, "/api/v1/tags/"+other.ID, owner.Token, updateTagRequest{Name: &name})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestTagAccessControl(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")
	project := env.createProject(t, owner.Token, "acme")
	tag := env.createTag(t, owner.Token, project.ID, "favorite")

	name := "hijacked"
	rec := env.do(t, http.MethodPut, "/api/v1/tags/"+tag.ID, other.Token, updateTagRequest{Name: &name})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/tags/"+tag.ID, other.Token, nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, "/api/v1/tags/"+uuid.NewString(), owner.Token, updateTagRequest{Name: &name})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTagRemovesAssociations(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	tag := env.createTag(t, owner.Token, project.ID, "favorite")
	testimonial := env.createTestimonial(t, owner.Token, project.ID, "Jane Doe")

	rec := env.setTags(t, owner.Token, testimonial.ID, []string{tag.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, "/api/v1/tags/"+tag.ID, owner.Token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	got := env.getTestimonial(t, owner.Token, testimonial.ID)
	require.Empty(t, got.Tags)

	// The association rows themselves must be gone, not merely invisible.
	var links int64
	require.NoError(t, env.gorm.Model(&models.TestimonialTag{}).Count(&links).Error)
	require.Zero(t, links)
}

// End to end: create a tag, attach it, and read it back on the testimonial.
func TestSetTestimonialTags(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	tag := env.createTag(t, owner.Token, project.ID, "favorite")
	testimonial := env.createTestimonial(t, owner.Token, project.ID, "Jane Doe")

	rec := env.setTags(t, owner.Token, testimonial.ID, []string{tag.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[testimonialTagsResponse](t, rec)
	require.Len(t, resp.Tags, 1)
	require.Equal(t, tag.ID, resp.Tags[0].ID)

	got := env.getTestimonial(t, owner.Token, testimonial.ID)
	require.Len(t, got.Tags, 1)
	require.Equal(t, tag.ID, got.Tags[0].ID)
}

// Re-sending the same set must succeed and leave exactly one link per tag.
func TestSetTestimonialTagsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	tag := env.createTag(t, owner.Token, project.ID, "favorite")
	testimonial := env.createTestimonial(t, owner.Token, project.ID, "Jane Doe")

	for i := 0; i < 2; i++ {
		rec := env.setTags(t, owner.Token, testimonial.ID, []string{tag.ID})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	got := env.getTestimonial(t, owner.Token, testimonial.ID)
	require.Len(t, got.Tags, 1)
}

func TestSetTestimonialTagsReplaces(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	first := env.createTag(t, owner.Token, project.ID, "favorite")
	second := env.createTag(t, owner.Token, project.ID, "video")
	testimonial := env.createTestimonial(t, owner.Token, project.ID, "Jane Doe")

	rec := env.setTags(t, owner.Token, testimonial.ID, []string{first.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.setTags(t, owner.Token, testimonial.ID, []string{second.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	got := env.getTestimonial(t, owner.Token, testimonial.ID)
	require.Len(t, got.Tags, 1)
	require.Equal(t, second.ID, got.Tags[0].ID)
}

func TestSetTestimonialTagsEmptyClears(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	tag := env.createTag(t, owner.Token, project.ID, "favorite")
	testimonial := env.createTestimonial(t, owner.Token, project.ID, "Jane Doe")

	rec := env.setTags(t, owner.Token, testimonial.ID, []string{tag.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.setTags(t, owner.Token, testimonial.ID, []string{})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeBody[testimonialTagsResponse](t, rec)
	require.NotNil(t, resp.Tags)
	require.Empty(t, resp.Tags)

	got := env.getTestimonial(t, owner.Token, testimonial.ID)
	require.Empty(t, got.Tags)
}

// A tag from another project is rejected before anything is written, so the
// existing associations survive untouched.
func TestSetTestimonialTagsForeignProjectTag(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	projectA := env.createProject(t, owner.Token, "acme")
	projectB := env.createProject(t, owner.Token, "globex")
	tagA := env.createTag(t, owner.Token, projectA.ID, "favorite")
	tagB := env.createTag(t, owner.Token, projectB.ID, "favorite")
	testimonial := env.createTestimonial(t, owner.Token, projectA.ID, "Jane Doe")

	rec := env.setTags(t, owner.Token, testimonial.ID, []string{tagA.ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.setTags(t, owner.Token, testimonial.ID, []string{tagB.ID})
	require.Equal(t, http.StatusForbidden, rec.Code)

	got := env.getTestimonial(t, owner.Token, testimonial.ID)
	require.Len(t, got.Tags, 1)
	require.Equal(t, tagA.ID, got.Tags[0].ID)
}

func TestSetTestimonialTagsUnknownTag(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	project := env.createProject(t, owner.Token, "acme")
	testimonial := env.createTestimonial(t, owner.Token, project.ID, "Jane Doe")

	rec := env.setTags(t, owner.Token, testimonial.ID, []string{uuid.NewString()})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.setTags(t, owner.Token, testimonial.ID, []string{"not-a-uuid"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetTestimonialTagsForeignTestimonial(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "owner@example.com")
	other := env.register(t, "other@example.com")
	project := env.createProject(t, owner.Token, "acme")
	tag := env.createTag(t, owner.Token, project.ID, "favorite")
	testimonial := env.createTestimonial(t, owner.Token, project.ID, "Jane Doe")

	rec := env.setTags(t, other.Token, testimonial.ID, []string{tag.ID})
	require.Equal(t, http.StatusForbidden, rec.Code)
}
