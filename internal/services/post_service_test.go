package services

import (
	"testing"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGetPost(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")

	created, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "A", Content: "B"})
	require.NoError(t, err)

	got, err := env.posts.GetPost(env.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, u1.ID, got.Author.ID)
	assert.Equal(t, "alice", got.Author.Username)
	assert.Empty(t, got.Likes)
	assert.NotNil(t, got.Likes)
	assert.Empty(t, got.Comments)
	assert.Nil(t, got.Community)

	_, err = env.posts.GetPost(env.ctx, primitive.NewObjectID())
	requireKind(t, err, apperr.KindNotFound)
}

func TestToggleLikeIsInvolution(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	post, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "A", Content: "B"})
	require.NoError(t, err)

	liked, err := env.posts.ToggleLike(env.ctx, post.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u2.ID}, liked.Likes)

	unliked, err := env.posts.ToggleLike(env.ctx, post.ID, u2.ID)
	require.NoError(t, err)
	assert.Empty(t, unliked.Likes)
}

func TestLikesNeverDuplicate(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	users := []primitive.ObjectID{u1.ID, env.signup(t, "bob").ID, env.signup(t, "carol").ID}
	post, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "A", Content: "B"})
	require.NoError(t, err)

	for i := 0; i < 7; i++ {
		post, err = env.posts.ToggleLike(env.ctx, post.ID, users[i%len(users)])
		require.NoError(t, err)
		seen := map[primitive.ObjectID]bool{}
		for _, id := range post.Likes {
			assert.False(t, seen[id])
			seen[id] = true
		}
	}
}

func TestCommentsAndReplies(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	post, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "A", Content: "B"})
	require.NoError(t, err)

	withComment, err := env.posts.AddComment(env.ctx, post.ID, u2.ID, "nice")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	comment := withComment.Comments[0]
	assert.Equal(t, "bob", comment.User.Username)
	assert.Empty(t, comment.Likes)
	assert.Empty(t, comment.Replies)

	liked, err := env.posts.ToggleCommentLike(env.ctx, post.ID, comment.ID, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{u1.ID}, liked.Comments[0].Likes)

	replied, err := env.posts.AddReply(env.ctx, post.ID, comment.ID, u1.ID, "thanks")
	require.NoError(t, err)
	require.Len(t, replied.Comments[0].Replies, 1)
	assert.Equal(t, "alice", replied.Comments[0].Replies[0].User.Username)
	assert.Equal(t, "thanks", replied.Comments[0].Replies[0].Text)

	_, err = env.posts.ToggleCommentLike(env.ctx, post.ID, primitive.NewObjectID(), u1.ID)
	requireKind(t, err, apperr.KindNotFound)
	_, err = env.posts.AddReply(env.ctx, post.ID, primitive.NewObjectID(), u1.ID, "x")
	requireKind(t, err, apperr.KindNotFound)
}

func TestCommentIDBelongsToItsPost(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	first, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "1", Content: "x"})
	require.NoError(t, err)
	second, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "2", Content: "y"})
	require.NoError(t, err)
	commented, err := env.posts.AddComment(env.ctx, first.ID, u1.ID, "hi")
	require.NoError(t, err)

	_, err = env.posts.ToggleCommentLike(env.ctx, second.ID, commented.Comments[0].ID, u1.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestUpdateAndDeleteRequireAuthor(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	u2 := env.signup(t, "bob")
	post, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "A", Content: "B", Tags: []string{"go"}})
	require.NoError(t, err)

	_, err = env.posts.UpdatePost(env.ctx, u2.ID, post.ID, &models.UpdatePostRequest{Title: "hijack"})
	requireKind(t, err, apperr.KindForbidden)
	requireKind(t, env.posts.DeletePost(env.ctx, u2.ID, post.ID), apperr.KindForbidden)

	anon := true
	updated, err := env.posts.UpdatePost(env.ctx, u1.ID, post.ID, &models.UpdatePostRequest{Title: "A2", Anonymous: &anon})
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Title)
	assert.Equal(t, "B", updated.Content)
	assert.Equal(t, []string{"go"}, updated.Tags)
	assert.True(t, updated.Anonymous)

	require.NoError(t, env.posts.DeletePost(env.ctx, u1.ID, post.ID))
	_, err = env.posts.GetPost(env.ctx, post.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestPublicFeedExcludesCommunityPosts(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	community, err := env.communities.CreateCommunity(env.ctx, u1.ID, &models.CreateCommunityRequest{Name: "Foo"})
	require.NoError(t, err)

	_, err = env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "public", Content: "x"})
	require.NoError(t, err)
	_, err = env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "scoped", Content: "y", CommunityID: community.ID.Hex()})
	require.NoError(t, err)

	page, err := env.posts.ListPosts(env.ctx, models.PostFilter{PublicOnly: true}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	for _, p := range page.Items {
		assert.Nil(t, p.Community)
	}
	assert.EqualValues(t, 1, page.TotalCount)
}

func TestListPostsPagination(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	for i := 0; i < 5; i++ {
		_, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{Title: "t", Content: "c"})
		require.NoError(t, err)
	}

	page, err := env.posts.ListPosts(env.ctx, models.PostFilter{PublicOnly: true}, models.NewPagination(1, 2, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 5, page.TotalCount)
	assert.EqualValues(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 2)

	beyond, err := env.posts.ListPosts(env.ctx, models.PostFilter{PublicOnly: true}, models.NewPagination(4, 2, 0))
	require.NoError(t, err)
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
	assert.EqualValues(t, 4, beyond.CurrentPage)
}

func TestCreatePostInMissingCommunity(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.signup(t, "alice")
	_, err := env.posts.CreatePost(env.ctx, u1.ID, &models.CreatePostRequest{
		Title: "t", Content: "c", CommunityID: primitive.NewObjectID().Hex(),
	})
	requireKind(t, err, apperr.KindNotFound)

	_, total, err := env.store.Posts.FindPosts(env.ctx, models.PostFilter{}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	assert.Zero(t, total)
}
