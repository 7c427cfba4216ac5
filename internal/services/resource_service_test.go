package services

import (
	"testing"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newResource(title, kind string) *models.CreateResourceRequest {
	return &models.CreateResourceRequest{
		Title:       title,
		Description: "about " + title,
		Type:        kind,
		Link:        "https://example.com/" + title,
		Tags:        []string{"go"},
	}
}

func TestResourceLifecycle(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")

	_, err := env.resources.CreateResource(env.ctx, u1.ID, newResource("bad", "Podcast"))
	requireKind(t, err, apperr.KindValidation)

	res, err := env.resources.CreateResource(env.ctx, u1.ID, newResource("tour", "Tutorial"))
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Author.Username)
	assert.Empty(t, res.SavedBy)

	_, err = env.resources.UpdateResource(env.ctx, u2.ID, res.ID, &models.UpdateResourceRequest{Title: "mine"})
	requireKind(t, err, apperr.KindForbidden)
	requireKind(t, env.resources.DeleteResource(env.ctx, u2.ID, res.ID), apperr.KindForbidden)

	updated, err := env.resources.UpdateResource(env.ctx, u1.ID, res.ID, &models.UpdateResourceRequest{Type: "Book"})
	require.NoError(t, err)
	assert.Equal(t, "Book", updated.Type)
	assert.Equal(t, "tour", updated.Title)

	_, err = env.resources.UpdateResource(env.ctx, u1.ID, res.ID, &models.UpdateResourceRequest{Type: "Podcast"})
	requireKind(t, err, apperr.KindValidation)

	require.NoError(t, env.resources.DeleteResource(env.ctx, u1.ID, res.ID))
	_, err = env.resources.GetResource(env.ctx, res.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestToggleSaveAndListings(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	older, err := env.resources.CreateResource(env.ctx, u1.ID, newResource("older", "Notes"))
	require.NoError(t, err)
	newer, err := env.resources.CreateResource(env.ctx, u1.ID, newResource("newer", "Tool"))
	require.NoError(t, err)

	saved, err := env.resources.ToggleSave(env.ctx, older.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u2.ID}, saved.SavedBy)

	uploads, err := env.resources.Uploads(env.ctx, u1.ID)
	require.NoError(t, err)
	require.Len(t, uploads, 2)
	assert.Equal(t, newer.ID, uploads[0].ID)

	bookmarks, err := env.resources.Saved(env.ctx, u2.ID)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, older.ID, bookmarks[0].ID)

	unsaved, err := env.resources.ToggleSave(env.ctx, older.ID, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, unsaved.SavedBy)

	bookmarks, err = env.resources.Saved(env.ctx, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, bookmarks)
}

func TestListResourcesAlphabetical(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	for _, title := range []string{"charlie", "alpha", "bravo"} {
		_, err := env.resources.CreateResource(env.ctx, u1.ID, newResource(title, "Other"))
		require.NoError(t, err)
	}
	page, err := env.resources.ListResources(env.ctx, models.ResourceFilter{}, models.NewPagination(1, 2, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.EqualValues(t, 2, page.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "alpha", page.Items[0].Title)
	assert.Equal(t, "bravo", page.Items[1].Title)
}
