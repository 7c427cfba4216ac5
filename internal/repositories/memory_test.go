package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMemoryUserUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Users.CreateUser(ctx, &models.User{Username: "ada", Email: "ada@example.com"}))
	err := store.Users.CreateUser(ctx, &models.User{Username: "ada", Email: "other@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
	err = store.Users.CreateUser(ctx, &models.User{Username: "other", Email: "ada@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = store.Users.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	post := &models.Post{Title: "t", Content: "c", Likes: []primitive.ObjectID{}}
	require.NoError(t, store.Posts.CreatePost(ctx, post))

	got, err := store.Posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	got.Likes = append(got.Likes, primitive.NewObjectID())

	again, err := store.Posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Likes)
}

func TestMemoryFindPostsOrderAndPaging(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	community := primitive.NewObjectID()

	var ids []primitive.ObjectID
	for i := 0; i < 5; i++ {
		p := &models.Post{Title: "post", Content: "body"}
		require.NoError(t, store.Posts.CreatePost(ctx, p))
		ids = append(ids, p.ID)
	}
	require.NoError(t, store.Posts.CreatePost(ctx, &models.Post{Title: "in community", Community: &community}))

	page := models.NewPagination(1, 2, 0)
	posts, total, err := store.Posts.FindPosts(ctx, models.PostFilter{PublicOnly: true}, page)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, posts, 2)
	assert.Equal(t, ids[4], posts[0].ID)
	assert.Equal(t, ids[3], posts[1].ID)

	posts, _, err = store.Posts.FindPosts(ctx, models.PostFilter{PublicOnly: true}, models.NewPagination(3, 2, 0))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, ids[0], posts[0].ID)

	posts, _, err = store.Posts.FindPosts(ctx, models.PostFilter{PublicOnly: true}, models.NewPagination(9, 2, 0))
	require.NoError(t, err)
	assert.Empty(t, posts)

	posts, total, err = store.Posts.FindPosts(ctx, models.PostFilter{CommunityID: &community}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "in community", posts[0].Title)
}

func TestMemorySearchIsCaseInsensitiveLiteral(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Posts.CreatePost(ctx, &models.Post{Title: "Learning C++", Content: "pointers"}))
	require.NoError(t, store.Posts.CreatePost(ctx, &models.Post{Title: "Go", Content: "goroutines"}))

	posts, _, err := store.Posts.FindPosts(ctx, models.PostFilter{Search: "c++"}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Learning C++", posts[0].Title)

	posts, _, err = store.Posts.FindPosts(ctx, models.PostFilter{Search: "GOROUTINE"}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestMemoryCommunityRelations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	viewer := primitive.NewObjectID()
	other := primitive.NewObjectID()

	own := &models.Community{Name: "Own", Admin: viewer, Members: []primitive.ObjectID{viewer}}
	joined := &models.Community{Name: "Joined", Admin: other, Members: []primitive.ObjectID{other, viewer}}
	fresh := &models.Community{Name: "Fresh", Admin: other, Members: []primitive.ObjectID{other}}
	for _, c := range []*models.Community{own, joined, fresh} {
		require.NoError(t, store.Communities.CreateCommunity(ctx, c))
	}
	assert.ErrorIs(t, store.Communities.CreateCommunity(ctx, &models.Community{Name: "Own"}), ErrDuplicate)

	list := func(relation string) []string {
		cs, _, err := store.Communities.FindCommunities(ctx,
			models.CommunityFilter{Relation: relation, ViewerID: &viewer}, models.NewPagination(1, 10, 0))
		require.NoError(t, err)
		var names []string
		for _, c := range cs {
			names = append(names, c.Name)
		}
		return names
	}
	assert.Equal(t, []string{"Own"}, list(models.RelationCreated))
	assert.Equal(t, []string{"Joined", "Own"}, list(models.RelationSubscribed))
	assert.Equal(t, []string{"Fresh"}, list(models.RelationRecommended))
}

func TestMemoryAppendPost(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := &models.Community{Name: "Writers", Posts: []primitive.ObjectID{}}
	require.NoError(t, store.Communities.CreateCommunity(ctx, c))

	postID := primitive.NewObjectID()
	require.NoError(t, store.Communities.AppendPost(ctx, c.ID, postID))
	got, err := store.Communities.GetCommunityByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{postID}, got.Posts)

	assert.ErrorIs(t, store.Communities.AppendPost(ctx, primitive.NewObjectID(), postID), ErrNotFound)
}

func TestMemoryDirectConversationLookup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	group := &models.Conversation{Name: "trio", IsGroup: true, Members: []primitive.ObjectID{a, b, c}}
	require.NoError(t, store.Conversations.CreateConversation(ctx, group))
	_, err := store.Conversations.FindDirectConversation(ctx, a, b)
	assert.ErrorIs(t, err, ErrNotFound)

	direct := &models.Conversation{Members: []primitive.ObjectID{a, b}}
	require.NoError(t, store.Conversations.CreateConversation(ctx, direct))
	found, err := store.Conversations.FindDirectConversation(ctx, b, a)
	require.NoError(t, err)
	assert.Equal(t, direct.ID, found.ID)

	_, err = store.Conversations.FindDirectConversation(ctx, a, a)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConversationsByRecentActivity(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	first := &models.Conversation{Members: []primitive.ObjectID{a, b}}
	second := &models.Conversation{Members: []primitive.ObjectID{a, c}}
	require.NoError(t, store.Conversations.CreateConversation(ctx, first))
	require.NoError(t, store.Conversations.CreateConversation(ctx, second))
	require.NoError(t, store.Conversations.SetLastMessage(ctx, first.ID, primitive.NewObjectID()))

	convs, err := store.Conversations.GetConversationsByMember(ctx, a)
	require.NoError(t, err)
	require.Len(t, convs, 2)
	assert.Equal(t, first.ID, convs[0].ID)
	assert.NotNil(t, convs[0].LastMessage)

	convs, err = store.Conversations.GetConversationsByMember(ctx, c)
	require.NoError(t, err)
	require.Len(t, convs, 1)
}

func TestMemoryMessagesOldestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	conv := primitive.NewObjectID()
	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, store.Messages.CreateMessage(ctx, &models.Message{ConversationID: &conv, Content: text}))
	}
	require.NoError(t, store.Messages.CreateMessage(ctx, &models.Message{Content: "elsewhere"}))

	msgs, err := store.Messages.GetMessagesByConversation(ctx, conv)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "three", msgs[2].Content)
}

func TestMemoryResourceFilters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	author := primitive.NewObjectID()
	saver := primitive.NewObjectID()

	book := &models.Resource{Title: "Book B", Type: "Book", Author: author, Tags: []string{"go"}}
	notes := &models.Resource{Title: "Alpha notes", Type: "Notes", Author: primitive.NewObjectID(), SavedBy: []primitive.ObjectID{saver}}
	require.NoError(t, store.Resources.CreateResource(ctx, book))
	require.NoError(t, store.Resources.CreateResource(ctx, notes))

	all, total, err := store.Resources.FindResources(ctx, models.ResourceFilter{}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Equal(t, "Alpha notes", all[0].Title)

	byType, _, err := store.Resources.FindResources(ctx, models.ResourceFilter{Search: "book"}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, book.ID, byType[0].ID)

	uploads, err := store.Resources.ListRecentResources(ctx, models.ResourceFilter{AuthorID: &author})
	require.NoError(t, err)
	require.Len(t, uploads, 1)

	saved, err := store.Resources.ListRecentResources(ctx, models.ResourceFilter{SavedByID: &saver})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, notes.ID, saved[0].ID)

	tagged, _, err := store.Resources.FindResources(ctx, models.ResourceFilter{Tag: "go"}, models.NewPagination(1, 10, 0))
	require.NoError(t, err)
	require.Len(t, tagged, 1)
}

func TestUserRecordRoundTrip(t *testing.T) {
	u := &models.User{ID: primitive.NewObjectID(), Username: "ada", Email: "ada@example.com", FirebaseUID: "fb-1"}
	rec := toUserRecord(u)
	assert.Equal(t, u.ID.Hex(), rec.ID)
	require.NotNil(t, rec.FirebaseUID)

	back := rec.toUser()
	assert.Equal(t, u.ID, back.ID)
	assert.Equal(t, "fb-1", back.FirebaseUID)
	assert.NotNil(t, back.Followers)

	assert.Nil(t, toUserRecord(&models.User{ID: primitive.NewObjectID()}).FirebaseUID)
}
