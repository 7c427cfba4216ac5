package services

import (
	"testing"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func memberIDs(c *models.CommunityView) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(c.Members))
	for _, m := range c.Members {
		ids = append(ids, m.ID)
	}
	return ids
}

func TestCommunityMembershipScenario(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")

	foo, err := env.communities.CreateCommunity(env.ctx, u1.ID, &models.CreateCommunityRequest{Name: "Foo"})
	require.NoError(t, err)
	assert.Equal(t, u1.ID, foo.Admin.ID)
	assert.Equal(t, []primitive.ObjectID{u1.ID}, memberIDs(foo))

	joined, err := env.communities.Join(env.ctx, foo.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u1.ID, u2.ID}, memberIDs(joined))

	_, err = env.communities.Join(env.ctx, foo.ID, u2.ID)
	requireKind(t, err, apperr.KindConflict)

	left, err := env.communities.Leave(env.ctx, foo.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u1.ID}, memberIDs(left))

	again, err := env.communities.Leave(env.ctx, foo.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u1.ID}, memberIDs(again))
}

func TestCommunityNameIsUnique(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	_, err := env.communities.CreateCommunity(env.ctx, u1.ID, &models.CreateCommunityRequest{Name: "Foo"})
	require.NoError(t, err)

	_, err = env.communities.CreateCommunity(env.ctx, u2.ID, &models.CreateCommunityRequest{Name: "Foo"})
	requireKind(t, err, apperr.KindConflict)

	bar, err := env.communities.CreateCommunity(env.ctx, u2.ID, &models.CreateCommunityRequest{Name: "Bar"})
	require.NoError(t, err)
	_, err = env.communities.UpdateCommunity(env.ctx, u2.ID, bar.ID, &models.UpdateCommunityRequest{Name: "Foo"})
	requireKind(t, err, apperr.KindConflict)
}

func TestCommunityAdminOnlyMutations(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	foo, err := env.communities.CreateCommunity(env.ctx, u1.ID, &models.CreateCommunityRequest{Name: "Foo", Description: "old"})
	require.NoError(t, err)

	_, err = env.communities.UpdateCommunity(env.ctx, u2.ID, foo.ID, &models.UpdateCommunityRequest{Description: "new"})
	requireKind(t, err, apperr.KindForbidden)
	requireKind(t, env.communities.DeleteCommunity(env.ctx, u2.ID, foo.ID), apperr.KindForbidden)

	updated, err := env.communities.UpdateCommunity(env.ctx, u1.ID, foo.ID, &models.UpdateCommunityRequest{Description: "new"})
	require.NoError(t, err)
	assert.Equal(t, "Foo", updated.Name)
	assert.Equal(t, "new", updated.Description)

	require.NoError(t, env.communities.DeleteCommunity(env.ctx, u1.ID, foo.ID))
	_, err = env.communities.GetCommunity(env.ctx, foo.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestAddPostToCommunity(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	foo, err := env.communities.CreateCommunity(env.ctx, u1.ID, &models.CreateCommunityRequest{Name: "Foo"})
	require.NoError(t, err)

	post, err := env.communities.AddPost(env.ctx, foo.ID, u2.ID, &models.CreatePostRequest{Title: "hello", Content: "world"})
	require.NoError(t, err)
	require.NotNil(t, post.Community)
	assert.Equal(t, foo.ID, *post.Community)

	detail, err := env.communities.GetCommunity(env.ctx, foo.ID)
	require.NoError(t, err)
	require.Len(t, detail.Posts, 1)
	assert.Equal(t, post.ID, detail.Posts[0].ID)
	assert.Equal(t, "bob", detail.Posts[0].Author.Username)

	_, err = env.communities.AddPost(env.ctx, primitive.NewObjectID(), u2.ID, &models.CreatePostRequest{Title: "x", Content: "y"})
	requireKind(t, err, apperr.KindNotFound)
}

func TestListCommunitiesByRelation(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	_, err := env.communities.CreateCommunity(env.ctx, u1.ID, &models.CreateCommunityRequest{Name: "Alpha"})
	require.NoError(t, err)
	beta, err := env.communities.CreateCommunity(env.ctx, u2.ID, &models.CreateCommunityRequest{Name: "Beta"})
	require.NoError(t, err)

	recommended, err := env.communities.ListCommunities(env.ctx,
		models.CommunityFilter{Relation: models.RelationRecommended, ViewerID: &u1.ID}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	require.Len(t, recommended.Items, 1)
	assert.Equal(t, "Beta", recommended.Items[0].Name)

	_, err = env.communities.Join(env.ctx, beta.ID, u1.ID)
	require.NoError(t, err)
	subscribed, err := env.communities.ListCommunities(env.ctx,
		models.CommunityFilter{Relation: models.RelationSubscribed, ViewerID: &u1.ID}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, subscribed.TotalCount)
	assert.Equal(t, "Alpha", subscribed.Items[0].Name)
}
