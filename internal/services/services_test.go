package services

import (
	"context"
	"testing"

	"github.com/anonto42/scriblyn/backend/internal/apperr"
	"github.com/anonto42/scriblyn/backend/internal/models"
	"github.com/anonto42/scriblyn/backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	ctx         context.Context
	store       *repositories.Store
	users       *UserService
	posts       *PostService
	communities *CommunityService
	messages    *MessageService
	resources   *ResourceService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repositories.NewMemoryStore()
	populator := NewPopulator(store.Users, store.Messages)
	posts := NewPostService(store, populator)
	return &testEnv{
		ctx:         context.Background(),
		store:       store,
		users:       NewUserService(store.Users, nil),
		posts:       posts,
		communities: NewCommunityService(store, posts, populator),
		messages:    NewMessageService(store, populator),
		resources:   NewResourceService(store, populator),
	}
}

func (e *testEnv) signup(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := e.users.Signup(e.ctx, &models.SignupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	return u
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), err.Error())
}
